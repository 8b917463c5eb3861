package util

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// rename is swapped in tests to simulate a failing final step.
var rename = os.Rename

// WriteFileAtomic writes data next to path under a temporary name, then
// renames it into place so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".orf-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		// #nosec G104 -- best-effort cleanup of the temp file
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		// #nosec G104 -- close before removal on write failure
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// ReadInput reads a named file, or r when name is empty or "-".
func ReadInput(name string, r io.Reader) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	// #nosec G304 -- input path provided as command argument
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}
