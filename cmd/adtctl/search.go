package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	core "github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/printer"
	"github.com/joshuapare/adtkit/internal/format"
	"github.com/joshuapare/adtkit/pkg/adt"
)

var (
	searchNodesOnly     bool
	searchPropsOnly     bool
	searchRegex         bool
	searchCaseSensitive bool
	searchMaxResults    int
	searchPath          string
)

func init() {
	cmd := newSearchCmd()
	cmd.Flags().BoolVar(&searchNodesOnly, "nodes-only", false, "Search only node names")
	cmd.Flags().BoolVar(&searchPropsOnly, "props-only", false, "Search only properties")
	cmd.Flags().BoolVar(&searchRegex, "regex", false, "Use regex pattern")
	cmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Case-sensitive search")
	cmd.Flags().IntVar(&searchMaxResults, "max-results", 0, "Limit results (0 = unlimited)")
	cmd.Flags().StringVar(&searchPath, "path", "/", "Search within subtree")
	rootCmd.AddCommand(cmd)
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <adt> <pattern>",
		Short: "Search for nodes and properties matching a pattern",
		Long: `The search command searches node names, property names and string
property values for a pattern (case-insensitive by default).

Example:
  adtctl search DeviceTree.bin uart
  adtctl search DeviceTree.bin "^iBoot" --regex --case-sensitive
  adtctl search DeviceTree.bin reg --props-only --path /arm-io`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args)
		},
	}
	return cmd
}

type searchResult struct {
	Nodes      []string    `json:"nodes"`
	Properties []propMatch `json:"properties"`
}

type propMatch struct {
	Node  string `json:"node"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

var errSearchLimit = errors.New("search limit reached")

func runSearch(args []string) error {
	adtPath := args[0]
	pattern := args[1]

	printVerbose("Opening adt: %s\n", adtPath)
	printVerbose("Searching for pattern: %s\n", pattern)

	match, err := newMatcher(pattern, searchRegex, searchCaseSensitive)
	if err != nil {
		return err
	}
	blob, err := adt.Load(adtPath)
	if err != nil {
		return err
	}

	result := searchResult{Nodes: []string{}, Properties: []propMatch{}}
	full := func() bool {
		return searchMaxResults > 0 && len(result.Nodes)+len(result.Properties) >= searchMaxResults
	}
	err = core.Walk(blob, searchPath, func(path string, node int) error {
		if !searchPropsOnly {
			name, err := core.NodeName(blob, node)
			if err == nil && match(name) {
				result.Nodes = append(result.Nodes, path)
				if full() {
					return errSearchLimit
				}
			}
		}
		if searchNodesOnly {
			return nil
		}
		props, err := core.Properties(blob, node)
		if err != nil {
			return err
		}
		for _, p := range props {
			if p.Name == format.NameProperty {
				continue // reported as the node itself
			}
			kind := printer.Classify(p.Value)
			textual := kind == printer.KindString || kind == printer.KindStrings
			if !match(p.Name) && !(textual && match(string(p.Value))) {
				continue
			}
			m := propMatch{Node: path, Name: p.Name, Kind: string(kind)}
			if textual {
				m.Value = printer.FormatValue(p.Value, 0)
			}
			result.Properties = append(result.Properties, m)
			if full() {
				return errSearchLimit
			}
		}
		return nil
	})
	limited := errors.Is(err, errSearchLimit)
	if err != nil && !limited {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("\nSearching for \"%s\" in %s...\n\n", pattern, adtPath)
	if len(result.Nodes) > 0 {
		printInfo("Nodes:\n")
		for _, p := range result.Nodes {
			printInfo("  %s\n", p)
		}
		printInfo("\n")
	}
	if len(result.Properties) > 0 {
		printInfo("Properties:\n")
		for _, m := range result.Properties {
			if m.Value != "" {
				printInfo("  %s %s = %s\n", m.Node, m.Name, m.Value)
			} else {
				printInfo("  %s %s [%s]\n", m.Node, m.Name, m.Kind)
			}
		}
		printInfo("\n")
	}
	total := len(result.Nodes) + len(result.Properties)
	if total == 0 {
		printInfo("No matches found\n")
		return nil
	}
	printInfo("Found %d matches\n", total)
	if limited {
		printInfo("(limited to %d results)\n", searchMaxResults)
	}
	return nil
}

// newMatcher compiles pattern into a predicate. Substring matching is the
// default; regex mode honours case sensitivity through (?i).
func newMatcher(pattern string, regex, caseSensitive bool) (func(string) bool, error) {
	if regex {
		flags := ""
		if !caseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		return re.MatchString, nil
	}
	if caseSensitive {
		return func(s string) bool { return strings.Contains(s, pattern) }, nil
	}
	lower := strings.ToLower(pattern)
	return func(s string) bool { return strings.Contains(strings.ToLower(s), lower) }, nil
}
