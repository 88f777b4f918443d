package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	core "github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/printer"
	"github.com/joshuapare/adtkit/pkg/adt"
)

var statsPath string

func init() {
	cmd := newStatsCmd()
	cmd.Flags().StringVar(&statsPath, "path", "/", "Stats for a specific subtree")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <adt>",
		Short: "Show detailed statistics",
		Long: `The stats command shows node and property counts per depth, the
distribution of value kinds, value byte totals and the largest entries.

Example:
  adtctl stats DeviceTree.bin
  adtctl stats DeviceTree.bin --path /arm-io --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

type adtStats struct {
	Path         string         `json:"path"`
	Nodes        int            `json:"nodes"`
	Properties   int            `json:"properties"`
	ValueBytes   int            `json:"value_bytes"`
	MaxDepth     int            `json:"max_depth"`
	NodesByDepth []int          `json:"nodes_by_depth"`
	Kinds        map[string]int `json:"kinds"`
	Reserved     int            `json:"reserved"`

	LargestProperty struct {
		Node string `json:"node"`
		Name string `json:"name"`
		Size int    `json:"size"`
	} `json:"largest_property"`

	BusiestNode struct {
		Path     string `json:"path"`
		Children int    `json:"children"`
	} `json:"busiest_node"`
}

func runStats(args []string) error {
	adtPath := args[0]

	printVerbose("Opening adt: %s\n", adtPath)

	blob, err := adt.Load(adtPath)
	if err != nil {
		return err
	}
	st, err := collectStats(blob, statsPath)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(st)
	}

	printInfo("\nStatistics for %s (%s):\n", adtPath, st.Path)
	printInfo("  Nodes:       %d\n", st.Nodes)
	printInfo("  Properties:  %d\n", st.Properties)
	printInfo("  Value bytes: %d\n", st.ValueBytes)
	printInfo("  Max depth:   %d\n", st.MaxDepth)

	printInfo("\nNodes by depth:\n")
	for depth, n := range st.NodesByDepth {
		printInfo("  %2d: %d\n", depth, n)
	}

	printInfo("\nValue kinds:\n")
	kinds := make([]string, 0, len(st.Kinds))
	for k := range st.Kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		printInfo("  %-8s %d\n", k, st.Kinds[k])
	}
	if st.Reserved > 0 {
		printInfo("  (%d with the reserved size bit set)\n", st.Reserved)
	}

	if st.LargestProperty.Name != "" {
		printInfo("\nLargest property: %s %s (%d bytes)\n",
			st.LargestProperty.Node, st.LargestProperty.Name, st.LargestProperty.Size)
	}
	if st.BusiestNode.Children > 0 {
		printInfo("Most children:    %s (%d)\n", st.BusiestNode.Path, st.BusiestNode.Children)
	}
	return nil
}

// collectStats walks the subtree at path. Depth is relative to path.
func collectStats(blob []byte, path string) (*adtStats, error) {
	st := &adtStats{Path: path, Kinds: map[string]int{}}
	base := depthOf(path)
	err := core.Walk(blob, path, func(p string, node int) error {
		depth := depthOf(p) - base
		st.Nodes++
		st.MaxDepth = max(st.MaxDepth, depth)
		for len(st.NodesByDepth) <= depth {
			st.NodesByDepth = append(st.NodesByDepth, 0)
		}
		st.NodesByDepth[depth]++

		props, err := core.Properties(blob, node)
		if err != nil {
			return err
		}
		for _, prop := range props {
			st.Properties++
			st.ValueBytes += prop.Size
			st.Kinds[string(printer.Classify(prop.Value))]++
			if prop.Reserved {
				st.Reserved++
			}
			if prop.Size > st.LargestProperty.Size {
				st.LargestProperty.Node, st.LargestProperty.Name, st.LargestProperty.Size = p, prop.Name, prop.Size
			}
		}

		children, err := core.ChildCount(blob, node)
		if err != nil {
			return err
		}
		if int(children) > st.BusiestNode.Children {
			st.BusiestNode.Path, st.BusiestNode.Children = p, int(children)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func depthOf(path string) int {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "/") + 1
}
