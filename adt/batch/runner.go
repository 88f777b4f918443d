package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/joshuapare/adtkit/adt/edit"
	"github.com/joshuapare/adtkit/pkg/types"
)

// Options configures a Runner.
type Options struct {
	// Registry resolves descriptor names. Default: NewRegistry()
	Registry *Registry

	// Editor applies the decoded operations. Default: edit.New(edit.DefaultOptions())
	Editor *edit.Editor

	// Logger receives one record per operation. Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns the options used for nil fields.
func DefaultOptions() Options {
	return Options{
		Registry: NewRegistry(),
		Editor:   edit.New(edit.DefaultOptions()),
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Runner applies batches of operations in order.
type Runner struct {
	reg *Registry
	ed  *edit.Editor
	log *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	def := DefaultOptions()
	if opts.Registry == nil {
		opts.Registry = def.Registry
	}
	if opts.Editor == nil {
		opts.Editor = def.Editor
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	return &Runner{reg: opts.Registry, ed: opts.Editor, log: opts.Logger}
}

// Result is the outcome of a batch. Blob is always the latest blob, also
// when Run returns an error.
type Result struct {
	Blob     []byte
	Applied  int // operations that completed
	Total    int // operations in the batch
	Growth   int // final length minus initial length
	Duration time.Duration
}

// Run applies ops to blob in order and stops at the first failure. The
// context is checked before each operation.
func (r *Runner) Run(ctx context.Context, blob []byte, ops []types.EditOp) (Result, error) {
	return r.run(ctx, blob, len(ops), func(i int) (types.EditOp, string, error) {
		if ops[i] == nil {
			return nil, "", types.Errorf(types.ErrKindInvalidOperation, "nil operation")
		}
		return ops[i], ops[i].Op(), nil
	})
}

// RunDescriptors decodes each descriptor right before applying it, so an
// unknown name stops the batch at that entry.
func (r *Runner) RunDescriptors(ctx context.Context, blob []byte, ds []Descriptor) (Result, error) {
	return r.run(ctx, blob, len(ds), func(i int) (types.EditOp, string, error) {
		op, err := r.reg.Decode(ds[i])
		return op, ds[i].Name, err
	})
}

// RunEntries is RunDescriptors for parsed entries. Field decoding happens
// per entry too, so entries before a malformed one are still applied.
func (r *Runner) RunEntries(ctx context.Context, blob []byte, es []Entry) (Result, error) {
	return r.run(ctx, blob, len(es), func(i int) (types.EditOp, string, error) {
		op, err := r.reg.DecodeEntry(es[i])
		return op, es[i].Name, err
	})
}

func (r *Runner) run(ctx context.Context, blob []byte, n int, next func(int) (types.EditOp, string, error)) (Result, error) {
	start := time.Now()
	res := Result{Blob: blob, Total: n}
	initial := len(blob)
	finish := func(err error) (Result, error) {
		res.Growth = len(res.Blob) - initial
		res.Duration = time.Since(start)
		return res, err
	}

	for i := range n {
		if err := ctx.Err(); err != nil {
			return finish(&OpError{Index: i, Err: err})
		}
		op, name, err := next(i)
		if err != nil {
			r.log.Warn("operation rejected", "index", i, "op", name, "error", err)
			return finish(&OpError{Index: i, Name: name, Err: err})
		}
		before := len(res.Blob)
		out, err := r.ed.Apply(res.Blob, op)
		if err != nil {
			r.log.Warn("operation failed", "index", i, "op", name, "error", err)
			return finish(&OpError{Index: i, Name: name, Op: op, Err: err})
		}
		res.Blob = out
		res.Applied++
		r.log.Info("operation applied", "index", i, "op", name, "delta", len(out)-before)
	}
	return finish(nil)
}
