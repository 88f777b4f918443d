package adt

import (
	"io"
	"log/slog"

	"github.com/joshuapare/adtkit/adt/batch"
	"github.com/joshuapare/adtkit/pkg/types"
)

// DefaultOutput is the output path used when ApplyOptions.Output is empty.
const DefaultOutput = "modded_adt.bin"

// loadHeadroom is the spare capacity given to loaded blobs.
const loadHeadroom = 4096

// ApplyOptions controls ApplyFile.
type ApplyOptions struct {
	// Output is the path the modified blob is written to.
	// Default: DefaultOutput
	Output string

	// Backup copies an existing Output file to Output+".bak" before it is
	// replaced.
	Backup bool

	// DryRun applies the batch in memory and writes nothing.
	DryRun bool

	// Format of the batch file. Default: chosen from the file extension,
	// then from the content.
	Format batch.Format

	// SkipValidation applies the batch without a structural check of the
	// input blob first.
	SkipValidation bool

	// Writer receives the edited blob instead of a file at Output.
	Writer types.Writer

	// Rand overrides the source used by randomize_property.
	Rand io.Reader

	// Logger receives progress records. Default: discard
	Logger *slog.Logger
}

func (o *ApplyOptions) withDefaults() ApplyOptions {
	var out ApplyOptions
	if o != nil {
		out = *o
	}
	if out.Output == "" {
		out.Output = DefaultOutput
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.DiscardHandler)
	}
	return out
}
