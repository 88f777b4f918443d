package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		setup    func()
		expected []string
		absent   []string
	}{
		{
			name:     "node name",
			pattern:  "uart",
			expected: []string{"Nodes:", "  /arm-io/uart0", "Found 1 matches"},
			absent:   []string{"Properties:"},
		},
		{
			name:     "string value ignores case",
			pattern:  "iboot",
			expected: []string{"Properties:", `  /chosen firmware-version = "iBoot-1234"`},
		},
		{
			name:     "props only",
			pattern:  "reg",
			setup:    func() { searchPropsOnly = true },
			expected: []string{"  /arm-io/uart0 reg [u32]", "Found 1 matches"},
		},
		{
			name:     "case sensitive",
			pattern:  "iboot",
			setup:    func() { searchCaseSensitive = true },
			expected: []string{"No matches found"},
		},
		{
			name:     "regex",
			pattern:  "^(chosen|arm-io)$",
			setup:    func() { searchRegex = true },
			expected: []string{"  /chosen", "  /arm-io", "Found 2 matches"},
			absent:   []string{"uart0"},
		},
		{
			name:     "limit",
			pattern:  "e",
			setup:    func() { searchMaxResults = 1 },
			expected: []string{"Found 1 matches", "(limited to 1 results)"},
		},
		{
			name:     "subtree",
			pattern:  "-",
			setup:    func() { searchPath = "/chosen" },
			expected: []string{"  /chosen firmware-version", "Found 1 matches"},
			absent:   []string{"device-tree", "arm-io"},
		},
		{
			name:     "no match",
			pattern:  "nothing-here",
			expected: []string{"No matches found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			if tt.setup != nil {
				tt.setup()
			}
			dir := t.TempDir()
			adtPath := writeTestFile(t, dir, "DeviceTree.bin", testBlob(t))

			output, err := captureOutput(t, func() error { return runSearch([]string{adtPath, tt.pattern}) })
			require.NoError(t, err)
			assertContains(t, output, tt.expected)
			for _, s := range tt.absent {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestSearchCommandJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	dir := t.TempDir()
	adtPath := writeTestFile(t, dir, "DeviceTree.bin", testBlob(t))

	output, err := captureOutput(t, func() error { return runSearch([]string{adtPath, "serial"}) })
	require.NoError(t, err)

	var res searchResult
	assertJSON(t, output, &res)
	assert.Empty(t, res.Nodes)
	assert.Equal(t, []propMatch{{Node: "/", Name: "serial-number", Kind: "u32"}}, res.Properties)
}

func TestSearchCommandBadRegex(t *testing.T) {
	resetFlags()
	searchRegex = true
	dir := t.TempDir()
	adtPath := writeTestFile(t, dir, "DeviceTree.bin", testBlob(t))

	_, err := captureOutput(t, func() error { return runSearch([]string{adtPath, "("}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}
