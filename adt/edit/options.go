package edit

import (
	"crypto/rand"
	"io"
	"log/slog"
)

// Options configures an Editor.
type Options struct {
	// Rand supplies the bytes written by RandomizeProperty.
	// Default: crypto/rand.Reader
	Rand io.Reader

	// Logger receives one debug record per applied operation.
	// Default: a logger that discards everything
	Logger *slog.Logger
}

// DefaultOptions returns the options used by New when fields are left nil.
func DefaultOptions() Options {
	return Options{
		Rand:   rand.Reader,
		Logger: slog.New(slog.DiscardHandler),
	}
}
