// Package logger builds the slog loggers used by the command line tools.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// L is the process logger. It discards everything until Init runs.
var L = Discard()

// Options configures the logger.
type Options struct {
	Level   slog.Level // minimum level. Default: LevelInfo
	NoColor bool       // force plain output even on a terminal
	JSON    bool       // emit JSON records instead of tinted text
	Output  *os.File   // default: os.Stderr
}

// Init replaces L according to opts and returns it.
func Init(opts Options) *slog.Logger {
	L = New(opts)
	return L
}

// New builds a logger without touching L.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: opts.Level}))
	}
	noColor := opts.NoColor || !isatty.IsTerminal(out.Fd())
	return NewText(colorable.NewColorable(out), opts.Level, noColor)
}

// NewText builds a tinted text logger on w.
func NewText(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop empty strings so optional attributes stay quiet.
			if a.Value.Kind() == slog.KindString && a.Value.String() == "" && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
