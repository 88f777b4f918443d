package adt

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp classifies one line of a tree diff.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffAdded
	DiffRemoved
)

// DiffLine is one line of the rendered trees.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// TreeDiff is the line diff of two rendered trees.
type TreeDiff struct {
	Lines []DiffLine
}

// Changed reports whether any line differs.
func (d TreeDiff) Changed() bool {
	for _, l := range d.Lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

// Stats returns the number of added and removed lines.
func (d TreeDiff) Stats() (added, removed int) {
	for _, l := range d.Lines {
		switch l.Op {
		case DiffAdded:
			added++
		case DiffRemoved:
			removed++
		}
	}
	return added, removed
}

// Unified renders the diff with +, - and space prefixes.
func (d TreeDiff) Unified() string {
	var b strings.Builder
	for _, l := range d.Lines {
		prefix := " "
		switch l.Op {
		case DiffAdded:
			prefix = "+"
		case DiffRemoved:
			prefix = "-"
		}
		fmt.Fprintf(&b, "%s %s\n", prefix, l.Text)
	}
	return b.String()
}

// Diff compares two blobs by their rendered trees. Offsets are left out of
// the rendering, so a moved but otherwise identical node is equal.
func Diff(oldBlob, newBlob []byte) (TreeDiff, error) {
	oldText, err := TreeString(oldBlob, "/")
	if err != nil {
		return TreeDiff{}, fmt.Errorf("render old: %w", err)
	}
	newText, err := TreeString(newBlob, "/")
	if err != nil {
		return TreeDiff{}, fmt.Errorf("render new: %w", err)
	}
	return diffLines(oldText, newText), nil
}

func diffLines(oldText, newText string) TreeDiff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out TreeDiff
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffAdded
		case diffmatchpatch.DiffDelete:
			op = DiffRemoved
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.Lines = append(out.Lines, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}
