package main

import (
	"fmt"

	"github.com/spf13/cobra"

	core "github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/pkg/adt"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <adt>",
		Short: "Validate a blob and report basic metadata",
		Long: `The info command validates an ADT blob and displays basic metadata:
file size, root name, top-level nodes, node and property totals and depth.

Example:
  adtctl info DeviceTree.bin
  adtctl info DeviceTree.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type adtInfo struct {
	File       string   `json:"file"`
	Size       int      `json:"size"`
	Root       string   `json:"root"`
	TopLevel   []string `json:"top_level"`
	Nodes      int      `json:"nodes"`
	Properties int      `json:"properties"`
	MaxDepth   int      `json:"max_depth"`
	End        int      `json:"end"`
	Trailing   int      `json:"trailing"`
}

func runInfo(args []string) error {
	adtPath := args[0]

	printVerbose("Opening adt: %s\n", adtPath)

	blob, err := adt.Load(adtPath)
	if err != nil {
		return err
	}
	r, err := core.Validate(blob)
	if err != nil {
		return fmt.Errorf("invalid adt: %w", err)
	}

	info := adtInfo{
		File:       adtPath,
		Size:       len(blob),
		Nodes:      r.Nodes,
		Properties: r.Properties,
		MaxDepth:   r.MaxDepth,
		End:        r.End,
		Trailing:   r.Trailing,
		TopLevel:   []string{},
	}
	if name, err := core.NodeName(blob, core.RootOffset); err == nil {
		info.Root = name
	}
	children, err := core.Children(blob, core.RootOffset)
	if err != nil {
		return err
	}
	for i, child := range children {
		name, err := core.NodeName(blob, child)
		if err != nil {
			name = fmt.Sprintf("@%d", i)
		}
		info.TopLevel = append(info.TopLevel, name)
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nADT Information:\n")
	printInfo("  File:       %s\n", adtPath)
	if info.Size < 1024 {
		printInfo("  Size:       %d bytes\n", info.Size)
	} else {
		printInfo("  Size:       %.1f KB\n", float64(info.Size)/1024)
	}
	printInfo("  Root:       %s\n", info.Root)
	printInfo("  Top level:  %d nodes\n", len(info.TopLevel))
	for _, name := range info.TopLevel {
		printInfo("    %s\n", name)
	}
	printInfo("  Nodes:      %d\n", info.Nodes)
	printInfo("  Properties: %d\n", info.Properties)
	printInfo("  Max depth:  %d\n", info.MaxDepth)

	printInfo("\nValidation:\n")
	printInfo("  ✓ Structure valid\n")
	if info.Trailing > 0 {
		printInfo("  ! %d trailing bytes after %#x\n", info.Trailing, info.End)
	}
	return nil
}
