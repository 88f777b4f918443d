package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logSuffix     = ".log"
	retentionDays = 30
)

// FileOptions configures a dated JSON log file.
type FileOptions struct {
	Dir    string     // log directory. Default: DefaultDir(Prefix)
	Prefix string     // file name prefix, e.g. "adtexplorer"
	Level  slog.Level // minimum level
	Now    func() time.Time
}

// OpenFile opens today's log file under opts.Dir, removes files older than
// the retention window and returns a JSON logger writing to it. The caller
// closes the returned file.
func OpenFile(opts FileOptions) (*slog.Logger, *os.File, error) {
	if opts.Prefix == "" {
		return nil, nil, errors.New("log file prefix is required")
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(opts.Prefix); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}

	prefix := opts.Prefix + "-"
	cleanOldLogs(dir, prefix, now().AddDate(0, 0, -retentionDays))

	name := filepath.Join(dir, prefix+now().Format(time.DateOnly)+logSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})), f, nil
}

// DefaultDir returns <user cache dir>/<prefix>/logs.
func DefaultDir(prefix string) (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(cache, prefix, "logs"), nil
}

// cleanOldLogs removes <prefix>YYYY-MM-DD.log files dated before cutoff.
func cleanOldLogs(dir, prefix string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSuffix(strings.TrimPrefix(name, prefix), logSuffix))
		if err != nil {
			continue
		}
		if date.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
