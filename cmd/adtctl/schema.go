package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/adt/batch"
)

func init() {
	rootCmd.AddCommand(newSchemaCmd())
}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of batch files",
		Long: `The schema command prints the JSON Schema that batch files follow,
for use with editors and linters.

Example:
  adtctl schema > adt-batch.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema()
		},
	}
	return cmd
}

func runSchema() error {
	out, err := batch.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
