package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/adtkit/adt/builder"
	"github.com/joshuapare/adtkit/adt/printer"
)

// testBlob builds the fixture tree used by the command tests.
func testBlob(t *testing.T) []byte {
	t.Helper()
	b := builder.New("device-tree")
	b.SetBytes(nil, "serial-number", []byte{1, 2, 3, 4})
	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
	b.SetU32([]string{"arm-io", "uart0"}, "reg", 0x200)
	blob, err := b.Bytes()
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return blob
}

// writeTestFile writes data into a fresh temp dir and returns its path.
func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// testADTPath writes the fixture blob and returns its path.
func testADTPath(t *testing.T) string {
	t.Helper()
	return writeTestFile(t, t.TempDir(), "DeviceTree.bin", testBlob(t))
}

// resetFlags restores every package level flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, noColor = false, false, false, true
	logLevel = "warn"
	applyOutput, applyBackup, applyDryRun = "", false, false
	applyFormat, applySkipValidation = "auto", false
	treePath, treeDepth, treeOffsets, treeNoValues = "/", 0, false, false
	treeMaxBytes = printer.DefaultMaxValueBytes
	getRaw = false
	diffAll = false
	validateStrict = false
	editOutput, editBackup, editDryRun, editSkipValidation = "", false, false, false
	addPropType = "string"
	statsPath = "/"
	searchNodesOnly, searchPropsOnly, searchRegex, searchCaseSensitive = false, false, false, false
	searchMaxResults, searchPath = 0, "/"
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain concurrently so large outputs do not block on the pipe buffer.
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	out := <-done
	r.Close()

	return string(out), fnErr
}

// assertJSON checks that output is valid JSON and decodes it into v
func assertJSON(t *testing.T, output string, v any) {
	t.Helper()
	if v == nil {
		var discard any
		v = &discard
	}
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
