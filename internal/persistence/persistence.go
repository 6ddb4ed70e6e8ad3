// Package persistence flushes the in-memory datasets to pretty-printed
// JSON files, one file per entity, and reloads them at startup. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated snapshot behind.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a snapshot directory (DATA_DIR).
type Dir struct {
	path string
}

// NewDir ensures the snapshot directory exists.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", path, err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string { return d.path }

func (d *Dir) file(name string) string {
	return filepath.Join(d.path, name+".json")
}

// SaveJSON writes items to <dir>/<name>.json atomically. Output is
// indented and keeps non-ASCII characters unescaped so the files stay
// readable and diffable.
func SaveJSON[T any](d *Dir, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := marshalIndent(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	target := d.file(name)
	tmp, err := os.CreateTemp(d.path, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	return nil
}

// LoadJSON reads <dir>/<name>.json. The second return is false when the
// file does not exist yet, which callers treat as "use the seeds".
func LoadJSON[T any](d *Dir, name string) ([]T, bool, error) {
	data, err := os.ReadFile(d.file(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return items, true, nil
}

func marshalIndent(v any) ([]byte, error) {
	// SetEscapeHTML(false) so names like "N'dalatando" stay as written.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
