// Package mmfile loads ADT files, memory-mapping them where the platform
// allows.
package mmfile

import "fmt"

// Load returns an owned, writable copy of the file at path with headroom
// bytes of spare capacity, so the first few insertions do not reallocate.
// The mapping, if any, is released before Load returns.
func Load(path string, headroom int) ([]byte, error) {
	data, cleanup, err := Map(path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data), len(data)+max(headroom, 0))
	copy(out, data)
	if err := cleanup(); err != nil {
		return nil, fmt.Errorf("mmfile: unmap %s: %w", path, err)
	}
	return out, nil
}
