package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, runOps)
	require.NoError(t, err)
	assertContains(t, output, []string{
		"add_node\n",
		"add_property\n",
		"delete_property\n",
		"randomize_property\n",
		"replace_property\n",
		"zero_out_property\n    Writes 0's to the given property value",
	})
	assert.Less(t, strings.Index(output, "add_node"), strings.Index(output, "zero_out_property"))
}

func TestOpsCommandJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	output, err := captureOutput(t, runOps)
	require.NoError(t, err)

	var ops []opInfo
	assertJSON(t, output, &ops)
	require.Len(t, ops, 6)
	assert.Equal(t, "add_node", ops[0].Name)
	for _, op := range ops {
		assert.NotEmpty(t, op.Help, op.Name)
	}
}

func TestSchemaCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, runSchema)
	require.NoError(t, err)

	var schema map[string]any
	assertJSON(t, output, &schema)
	assert.Equal(t, "array", schema["type"])
	assert.Contains(t, output, `"property"`)
}

func TestRootCommand(t *testing.T) {
	resetFlags()
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"--log-level", "error", "ops"})
	output, err := captureOutput(t, rootCmd.Execute)
	require.NoError(t, err)
	assert.Contains(t, output, "add_property")

	resetFlags()
	rootCmd.SetArgs([]string{"--log-level", "loud", "ops"})
	_, err = captureOutput(t, rootCmd.Execute)
	assert.ErrorContains(t, err, "unknown log level")
}
