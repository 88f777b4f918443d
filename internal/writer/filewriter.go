// Package writer exposes sinks for finished ADT blobs.
package writer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the target path when Backup is set.
const BackupSuffix = ".bak"

// FileWriter writes blob bytes to a filesystem path atomically.
type FileWriter struct {
	Path string

	// Backup copies an existing file at Path to Path+BackupSuffix before
	// it is replaced.
	Backup bool

	// Mode is used for a newly created file. Default: 0o644
	Mode fs.FileMode
}

// WriteADT writes buf to the configured path via temp file + rename.
func (w *FileWriter) WriteADT(buf []byte) error {
	if w.Backup {
		if err := backup(w.Path); err != nil {
			return err
		}
	}

	// Same directory so the rename stays on one filesystem.
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".adtkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if chmodErr := tmpFile.Chmod(w.mode()); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}

// mode keeps the permissions of an existing target.
func (w *FileWriter) mode() fs.FileMode {
	if info, err := os.Stat(w.Path); err == nil {
		return info.Mode().Perm()
	}
	if w.Mode != 0 {
		return w.Mode
	}
	return 0o644
}

func backup(path string) error {
	src, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path + BackupSuffix)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}
	return nil
}
