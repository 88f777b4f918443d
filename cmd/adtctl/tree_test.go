package main

import (
	"testing"
)

func TestTreeCommand(t *testing.T) {
	adtPath := testADTPath(t)

	tests := []struct {
		name           string
		path           string
		depth          int
		offsets        bool
		noValues       bool
		json           bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name: "whole tree",
			path: "/",
			wantContain: []string{
				"device-tree (properties: 2, children: 2)",
				"chosen",
				"firmware-version",
				`"iBoot-1234"`,
				"uart0",
				"0x00000200 (512)",
			},
			wantNotContain: []string{"offset:"},
		},
		{
			name:           "subtree",
			path:           "/arm-io",
			wantContain:    []string{"arm-io", "uart0"},
			wantNotContain: []string{"chosen", "serial-number"},
		},
		{
			name:           "depth limit",
			path:           "/",
			depth:          1,
			wantContain:    []string{"chosen", "arm-io"},
			wantNotContain: []string{"uart0"},
		},
		{
			name:        "offsets",
			path:        "/",
			offsets:     true,
			wantContain: []string{"offset: 0x0", "@0x8"},
		},
		{
			name:           "no values",
			path:           "/chosen",
			noValues:       true,
			wantContain:    []string{"chosen (properties: 2, children: 0)"},
			wantNotContain: []string{"iBoot"},
		},
		{
			name:        "json",
			path:        "/",
			json:        true,
			wantContain: []string{`"name": "device-tree"`, `"path": "/arm-io/uart0"`},
		},
		{
			name:    "missing node",
			path:    "/nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			treePath = tt.path
			treeDepth = tt.depth
			treeOffsets = tt.offsets
			treeNoValues = tt.noValues
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runTree([]string{adtPath})
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("runTree() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
			if tt.wantErr {
				return
			}
			if tt.json {
				assertJSON(t, output, nil)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
