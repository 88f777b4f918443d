package adt

import (
	"context"
	"fmt"
	"os"

	core "github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/batch"
	"github.com/joshuapare/adtkit/adt/edit"
	"github.com/joshuapare/adtkit/internal/mmfile"
	"github.com/joshuapare/adtkit/internal/writer"
	"github.com/joshuapare/adtkit/pkg/types"
)

// ApplyResult describes a finished ApplyFile call.
type ApplyResult struct {
	batch.Result
	Output    string // path written, empty for a dry run
	InputSize int
}

// Load reads an ADT file into an owned, growable buffer.
func Load(path string) ([]byte, error) {
	blob, err := mmfile.Load(path, loadHeadroom)
	if err != nil {
		return nil, fmt.Errorf("failed to read adt %s: %w", path, err)
	}
	return blob, nil
}

// ApplyFile applies the batch at opsPath to the ADT at adtPath and writes
// the result. Nothing is written when any operation fails; the returned
// result still holds the partially edited blob.
func ApplyFile(ctx context.Context, adtPath, opsPath string, opts *ApplyOptions) (*ApplyResult, error) {
	o := opts.withDefaults()

	blob, err := Load(adtPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(opsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch %s: %w", opsPath, err)
	}
	format := o.Format
	if format == batch.FormatAuto {
		format = batch.FormatForPath(opsPath)
	}
	o.Logger.Debug("loaded", "adt", adtPath, "size", len(blob), "batch", opsPath, "format", format)

	res, err := ApplyBytes(ctx, blob, data, format, &o)
	return commit(res, err, len(blob), &o)
}

// EditFile applies ops to the ADT at adtPath and writes the result the way
// ApplyFile does. It backs the single-operation commands.
func EditFile(ctx context.Context, adtPath string, ops []types.EditOp, opts *ApplyOptions) (*ApplyResult, error) {
	o := opts.withDefaults()

	blob, err := Load(adtPath)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded", "adt", adtPath, "size", len(blob), "ops", len(ops))

	res, err := Edit(ctx, blob, ops, &o)
	return commit(res, err, len(blob), &o)
}

// Edit applies typed operations to blob in memory.
func Edit(ctx context.Context, blob []byte, ops []types.EditOp, opts *ApplyOptions) (batch.Result, error) {
	o := opts.withDefaults()
	if err := checkInput(blob, &o); err != nil {
		return batch.Result{Blob: blob}, err
	}
	return newRunner(&o).Run(ctx, blob, ops)
}

// commit writes a successful result to the configured destination.
func commit(res batch.Result, err error, inputSize int, o *ApplyOptions) (*ApplyResult, error) {
	out := &ApplyResult{Result: res, InputSize: inputSize}
	if err != nil {
		return out, err
	}

	var w types.Writer = &writer.FileWriter{Path: o.Output, Backup: o.Backup}
	switch {
	case o.DryRun:
		w = &writer.Discard{}
	case o.Writer != nil:
		w = o.Writer
	}
	if err := w.WriteADT(res.Blob); err != nil {
		return out, fmt.Errorf("failed to write %s: %w", o.Output, err)
	}
	if !o.DryRun && o.Writer == nil {
		out.Output = o.Output
	}
	o.Logger.Info("done", "applied", res.Applied, "size", len(res.Blob), "growth", res.Growth, "output", out.Output)
	return out, nil
}

// ApplyBytes parses a batch and applies it to blob in memory.
func ApplyBytes(ctx context.Context, blob, ops []byte, format batch.Format, opts *ApplyOptions) (batch.Result, error) {
	o := opts.withDefaults()
	if err := checkInput(blob, &o); err != nil {
		return batch.Result{Blob: blob}, err
	}
	es, err := batch.Parse(ops, format)
	if err != nil {
		return batch.Result{Blob: blob}, err
	}
	return newRunner(&o).RunEntries(ctx, blob, es)
}

func checkInput(blob []byte, o *ApplyOptions) error {
	if o.SkipValidation {
		return nil
	}
	if _, err := core.Validate(blob); err != nil {
		return types.Wrap(types.ErrKindMalformedInput, err, "input adt")
	}
	return nil
}

func newRunner(o *ApplyOptions) *batch.Runner {
	return batch.NewRunner(batch.Options{
		Editor: edit.New(edit.Options{Rand: o.Rand, Logger: o.Logger}),
		Logger: o.Logger,
	})
}
