package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/adt/printer"
	"github.com/joshuapare/adtkit/pkg/adt"
)

var getRaw bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getRaw, "raw", false, "Write the raw value bytes to stdout")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <adt> <node> <property>",
		Short: "Get a single property",
		Long: `The get command prints one property of a node.

Example:
  adtctl get DeviceTree.bin /chosen firmware-version
  adtctl get DeviceTree.bin / serial-number --json
  adtctl get DeviceTree.bin /arm-io reg --raw > reg.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	adtPath := args[0]
	nodePath := args[1]
	name := args[2]

	printVerbose("Opening adt: %s\n", adtPath)

	blob, err := adt.Load(adtPath)
	if err != nil {
		return err
	}

	if getRaw {
		prop, err := adt.GetProperty(blob, nodePath, name)
		if err != nil {
			return fmt.Errorf("failed to get property: %w", err)
		}
		_, err = os.Stdout.Write(prop.Value)
		return err
	}

	opts := printer.DefaultOptions()
	opts.MaxValueBytes = 0
	opts.Color = colorEnabled()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if err := printer.New(blob, os.Stdout, opts).PrintProperty(nodePath, name); err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}
	return nil
}
