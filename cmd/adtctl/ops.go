package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/adt/batch"
)

func init() {
	rootCmd.AddCommand(newOpsCmd())
}

func newOpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List supported batch operations",
		Long: `The ops command lists every operation name a batch file may use,
with a short description of its parameters.

Example:
  adtctl ops
  adtctl ops --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps()
		},
	}
	return cmd
}

type opInfo struct {
	Name string `json:"name"`
	Help string `json:"help"`
}

func runOps() error {
	reg := batch.NewRegistry()
	names := reg.Names()

	if jsonOut {
		out := make([]opInfo, 0, len(names))
		for _, name := range names {
			h, _ := reg.Lookup(name)
			out = append(out, opInfo{Name: name, Help: h.Help()})
		}
		return printJSON(out)
	}

	for _, name := range names {
		h, _ := reg.Lookup(name)
		printInfo("%s\n    %s\n", name, h.Help())
	}
	return nil
}
