//go:build !unix

package mmfile

import "os"

// Map has no mapping to offer here, so it hands back the file contents and
// a cleanup with nothing to release. Load copies them like a mapping.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, release, nil
}

func release() error { return nil }
