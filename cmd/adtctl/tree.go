package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/adt/printer"
	"github.com/joshuapare/adtkit/pkg/adt"
)

var (
	treePath     string
	treeDepth    int
	treeOffsets  bool
	treeNoValues bool
	treeMaxBytes int
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().StringVar(&treePath, "path", "/", "Start at this node")
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth below the start node (0 = unlimited)")
	cmd.Flags().BoolVar(&treeOffsets, "offsets", false, "Show byte offsets")
	cmd.Flags().BoolVar(&treeNoValues, "no-values", false, "Hide property values")
	cmd.Flags().IntVar(&treeMaxBytes, "max-bytes", printer.DefaultMaxValueBytes, "Binary bytes shown per value (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <adt>",
		Short: "Print the node tree",
		Long: `The tree command prints the nodes and properties of an ADT blob.

Example:
  adtctl tree DeviceTree.bin
  adtctl tree DeviceTree.bin --path /arm-io --depth 1
  adtctl tree DeviceTree.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	adtPath := args[0]

	printVerbose("Opening adt: %s\n", adtPath)

	blob, err := adt.Load(adtPath)
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowOffsets = treeOffsets
	opts.ShowValues = !treeNoValues
	opts.MaxValueBytes = treeMaxBytes
	opts.Color = colorEnabled()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	if err := adt.Tree(blob, os.Stdout, treePath, opts); err != nil {
		return fmt.Errorf("failed to print tree: %w", err)
	}
	return nil
}
