package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/pkg/adt"
)

var diffAll bool

func init() {
	cmd := newDiffCmd()
	cmd.Flags().BoolVar(&diffAll, "all", false, "Print unchanged lines too")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two ADT blobs",
		Long: `The diff command renders both blobs as trees and prints the lines
that differ, prefixed with + or -.

Example:
  adtctl diff DeviceTree.bin modded_adt.bin
  adtctl diff DeviceTree.bin modded_adt.bin --all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

type diffSummary struct {
	Old     string   `json:"old"`
	New     string   `json:"new"`
	Changed bool     `json:"changed"`
	Added   int      `json:"added"`
	Removed int      `json:"removed"`
	Lines   []string `json:"lines"`
}

func runDiff(args []string) error {
	oldBlob, err := adt.Load(args[0])
	if err != nil {
		return err
	}
	newBlob, err := adt.Load(args[1])
	if err != nil {
		return err
	}

	d, err := adt.Diff(oldBlob, newBlob)
	if err != nil {
		return fmt.Errorf("failed to diff: %w", err)
	}
	added, removed := d.Stats()

	if !diffAll {
		d = changedOnly(d)
	}

	if jsonOut {
		sum := diffSummary{
			Old:     args[0],
			New:     args[1],
			Changed: added+removed > 0,
			Added:   added,
			Removed: removed,
			Lines:   []string{},
		}
		for _, l := range d.Lines {
			sum.Lines = append(sum.Lines, linePrefix(l.Op)+" "+l.Text)
		}
		return printJSON(sum)
	}

	if added+removed == 0 {
		printInfo("No differences\n")
		return nil
	}
	printInfo("%s", d.Unified())
	printVerbose("%d added, %d removed\n", added, removed)
	return nil
}

func changedOnly(d adt.TreeDiff) adt.TreeDiff {
	var out adt.TreeDiff
	for _, l := range d.Lines {
		if l.Op != adt.DiffEqual {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

func linePrefix(op adt.DiffOp) string {
	switch op {
	case adt.DiffAdded:
		return "+"
	case adt.DiffRemoved:
		return "-"
	default:
		return " "
	}
}
