package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/pkg/adt"
)

var validateStrict bool

func init() {
	cmd := newValidateCmd()
	cmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat trailing bytes after the root subtree as an error")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <adt>",
		Short: "Check blob structure",
		Long: `The validate command walks every node and property and checks that
each header, value and child lies inside the blob.

Example:
  adtctl validate DeviceTree.bin
  adtctl validate DeviceTree.bin --strict --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

type validateSummary struct {
	Path       string `json:"path"`
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	Nodes      int    `json:"nodes"`
	Properties int    `json:"properties"`
	MaxDepth   int    `json:"max_depth"`
	End        int    `json:"end"`
	Trailing   int    `json:"trailing"`
}

func runValidate(args []string) error {
	adtPath := args[0]

	printVerbose("Validating adt: %s\n", adtPath)

	r, err := adt.ValidateFile(adtPath)
	if err == nil && validateStrict && r.Trailing > 0 {
		err = fmt.Errorf("%d trailing bytes after root subtree at %#x", r.Trailing, r.End)
	}

	if jsonOut {
		sum := validateSummary{
			Path:       adtPath,
			Valid:      err == nil,
			Nodes:      r.Nodes,
			Properties: r.Properties,
			MaxDepth:   r.MaxDepth,
			End:        r.End,
			Trailing:   r.Trailing,
		}
		if err != nil {
			sum.Error = err.Error()
		}
		if perr := printJSON(sum); perr != nil {
			return perr
		}
		return err
	}
	if err != nil {
		return err
	}

	printInfo("✓ %s is valid\n", adtPath)
	printInfo("  Nodes:      %d\n", r.Nodes)
	printInfo("  Properties: %d\n", r.Properties)
	printInfo("  Max depth:  %d\n", r.MaxDepth)
	if r.Trailing > 0 {
		printInfo("  Trailing:   %d bytes after %#x\n", r.Trailing, r.End)
	}
	return nil
}
