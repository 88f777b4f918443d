package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adtkit/adt/batch"
	"github.com/joshuapare/adtkit/internal/logger"
	"github.com/joshuapare/adtkit/pkg/adt"
)

var (
	applyOutput         string
	applyBackup         bool
	applyDryRun         bool
	applyFormat         string
	applySkipValidation bool
)

func init() {
	cmd := newApplyCmd()
	cmd.Flags().StringVarP(&applyOutput, "output", "o", adt.DefaultOutput, "Path of the modified blob")
	cmd.Flags().BoolVar(&applyBackup, "backup", false, "Copy an existing output file to <output>.bak first")
	cmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Apply in memory only, write nothing")
	cmd.Flags().StringVar(&applyFormat, "format", "auto", "Batch format (auto, json, yaml)")
	cmd.Flags().BoolVar(&applySkipValidation, "skip-validation", false, "Do not check the input blob structure first")
	rootCmd.AddCommand(cmd)
}

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <adt> <ops>",
		Short: "Apply a batch of edit operations",
		Long: `The apply command runs every operation of a JSON or YAML batch file
against an ADT blob, in order, and writes the result.

The batch stops at the first failing operation and nothing is written.

Example:
  adtctl apply DeviceTree.bin ops.json
  adtctl apply DeviceTree.bin ops.yaml -o patched.bin --backup
  adtctl apply DeviceTree.bin ops.json --dry-run --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), args)
		},
	}
	return cmd
}

type applySummary struct {
	Input    string `json:"input"`
	Batch    string `json:"batch"`
	Output   string `json:"output,omitempty"`
	DryRun   bool   `json:"dry_run"`
	Applied  int    `json:"applied"`
	Total    int    `json:"total"`
	Size     int    `json:"size"`
	Growth   int    `json:"growth"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
	FailedAt *int   `json:"failed_at,omitempty"`
}

func runApply(ctx context.Context, args []string) error {
	adtPath := args[0]
	opsPath := args[1]

	format, err := parseFormat(applyFormat)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	printVerbose("Applying %s to %s\n", opsPath, adtPath)

	res, err := adt.ApplyFile(ctx, adtPath, opsPath, &adt.ApplyOptions{
		Output:         applyOutput,
		Backup:         applyBackup,
		DryRun:         applyDryRun,
		Format:         format,
		SkipValidation: applySkipValidation,
		Logger:         logger.L,
	})

	if jsonOut && res != nil {
		sum := applySummary{
			Input:    adtPath,
			Batch:    opsPath,
			Output:   res.Output,
			DryRun:   applyDryRun,
			Applied:  res.Applied,
			Total:    res.Total,
			Size:     len(res.Blob),
			Growth:   res.Growth,
			Duration: res.Duration.String(),
		}
		if err != nil {
			sum.Error = err.Error()
			var opErr *batch.OpError
			if errors.As(err, &opErr) {
				sum.FailedAt = &opErr.Index
			}
		}
		if perr := printJSON(sum); perr != nil {
			return perr
		}
	}
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	if jsonOut {
		return nil
	}

	if applyDryRun {
		printInfo("Dry run: %d/%d operations applied, size %d -> %d bytes\n",
			res.Applied, res.Total, res.InputSize, len(res.Blob))
		return nil
	}
	printInfo("Applied %d operations, wrote %d bytes to %s\n", res.Applied, len(res.Blob), res.Output)
	printVerbose("Growth: %+d bytes in %s\n", res.Growth, res.Duration)
	return nil
}

func parseFormat(s string) (batch.Format, error) {
	switch s {
	case "", "auto":
		return batch.FormatAuto, nil
	case "json":
		return batch.FormatJSON, nil
	case "yaml", "yml":
		return batch.FormatYAML, nil
	default:
		return batch.FormatAuto, fmt.Errorf("unknown batch format: %s (must be auto, json, or yaml)", s)
	}
}
