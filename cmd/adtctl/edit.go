package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/internal/logger"
	"github.com/joshuapare/adtkit/pkg/adt"
	"github.com/joshuapare/adtkit/pkg/types"
)

// Flags shared by every single-operation command.
var (
	editOutput         string
	editBackup         bool
	editDryRun         bool
	editSkipValidation bool
	addPropType        string
)

func init() {
	addProp := newAddPropCmd()
	addProp.Flags().StringVar(&addPropType, "type", "string", "Value type (string, u32, u64, u64[], bytes)")

	for _, cmd := range []*cobra.Command{
		addProp,
		newReplacePropCmd(),
		newDeletePropCmd(),
		newZeroPropCmd(),
		newRandomizePropCmd(),
		newAddNodeCmd(),
	} {
		cmd.Flags().StringVarP(&editOutput, "output", "o", adt.DefaultOutput, "Path of the modified blob")
		cmd.Flags().BoolVar(&editBackup, "backup", false, "Copy an existing output file to <output>.bak first")
		cmd.Flags().BoolVar(&editDryRun, "dry-run", false, "Apply in memory only, write nothing")
		cmd.Flags().BoolVar(&editSkipValidation, "skip-validation", false, "Do not check the input blob structure first")
		rootCmd.AddCommand(cmd)
	}
}

func newAddPropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-prop <adt> <node> <property> <value>",
		Short: "Add a property to a node",
		Long: `The add-prop command inserts a new property after the node's existing
properties. Numbers are decimal or 0x-prefixed hex; u64[] takes a comma
separated list and bytes takes hex digits.

Example:
  adtctl add-prop DeviceTree.bin /chosen boot-args "-v"
  adtctl add-prop DeviceTree.bin /arm-io/uart0 clock 0x10 --type u32
  adtctl add-prop DeviceTree.bin /chosen ranges 1,2,0x30 --type "u64[]"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValueArg(addPropType, args[3])
			if err != nil {
				return err
			}
			return runEdit(cmd.Context(), args[0], types.OpAddProperty{Path: args[1], Property: args[2], Value: v})
		},
	}
}

func newReplacePropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace-prop <adt> <node> <property> <string>",
		Short: "Overwrite a property with a shorter or equal string",
		Long: `The replace-prop command writes a string into an existing property
without resizing it. The string must fit in the current value.

Example:
  adtctl replace-prop DeviceTree.bin /chosen firmware-version iBoot-9999`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], types.OpReplaceProperty{Path: args[1], Property: args[2], Value: args[3]})
		},
	}
}

func newDeletePropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-prop <adt> <node> <property>",
		Short: "Remove a property from a node",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], types.OpDeleteProperty{Path: args[1], Property: args[2]})
		},
	}
}

func newZeroPropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zero-prop <adt> <node> <property>",
		Short: "Fill a property value with zero bytes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], types.OpZeroProperty{Path: args[1], Property: args[2]})
		},
	}
}

func newRandomizePropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "randomize-prop <adt> <node> <property>",
		Short: "Fill a property value with random bytes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], types.OpRandomizeProperty{Path: args[1], Property: args[2]})
		},
	}
}

func newAddNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-node <adt> <path>",
		Short: "Create a node under an existing parent",
		Long: `The add-node command appends a child node with a name property. The
parent must exist and the path must not.

Example:
  adtctl add-node DeviceTree.bin /arm-io/uart9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], types.OpAddNode{Path: args[1]})
		},
	}
}

type editSummary struct {
	Input   string `json:"input"`
	Op      string `json:"op"`
	Output  string `json:"output,omitempty"`
	DryRun  bool   `json:"dry_run"`
	Size    int    `json:"size"`
	Growth  int    `json:"growth"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func runEdit(ctx context.Context, adtPath string, op types.EditOp) error {
	if ctx == nil {
		ctx = context.Background()
	}

	printVerbose("Opening adt: %s\n", adtPath)

	res, err := adt.EditFile(ctx, adtPath, []types.EditOp{op}, &adt.ApplyOptions{
		Output:         editOutput,
		Backup:         editBackup,
		DryRun:         editDryRun,
		SkipValidation: editSkipValidation,
		Logger:         logger.L,
	})

	if jsonOut && res != nil {
		sum := editSummary{
			Input:   adtPath,
			Op:      op.Op(),
			Output:  res.Output,
			DryRun:  editDryRun,
			Size:    len(res.Blob),
			Growth:  res.Growth,
			Success: err == nil,
		}
		if err != nil {
			sum.Error = err.Error()
		}
		if perr := printJSON(sum); perr != nil {
			return perr
		}
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", op.Op(), err)
	}
	if jsonOut {
		return nil
	}

	printInfo("✓ %s applied, size %d -> %d bytes\n", op.Op(), res.InputSize, len(res.Blob))
	if editDryRun {
		printInfo("Dry run: nothing written\n")
		return nil
	}
	printInfo("Wrote %s\n", res.Output)
	if editBackup {
		printVerbose("Backup of any previous output: %s.bak\n", res.Output)
	}
	return nil
}

// parseValueArg builds a typed value from a command line argument.
func parseValueArg(typ, text string) (types.Value, error) {
	vt, err := types.ParseValueType(typ)
	if err != nil {
		return types.Value{}, err
	}
	if vt != types.ValueU64Array {
		return types.Value{Type: vt, Text: text}, nil
	}
	items := strings.Split(text, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return types.Value{Type: vt, Items: items}, nil
}
