// Package jsondb is a small file-backed record table. Each table is one JSON
// document of the form {"data": [...]} that is read and rewritten whole on
// every operation.
package jsondb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type document[T any] struct {
	Data []T `json:"data"`
}

// Table stores records of type T in a single JSON file.
type Table[T any] struct {
	mu   sync.Mutex
	path string
}

// Open returns the table stored at dir/name.json, creating the directory and
// an empty table file when they do not exist yet.
func Open[T any](dir, name string) (*Table[T], error) {
	if name == "" {
		return nil, errors.New("jsondb: table name is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsondb: mkdir %s: %w", dir, err)
	}

	t := &Table[T]{path: filepath.Join(dir, name+".json")}
	if _, err := os.Stat(t.path); errors.Is(err, fs.ErrNotExist) {
		if err := t.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("jsondb: stat %s: %w", t.path, err)
	}
	return t, nil
}

// Path is the backing file of the table.
func (t *Table[T]) Path() string {
	return t.path
}

// All returns every record in insertion order.
func (t *Table[T]) All() ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read()
}

// Find returns the first record accepted by match.
func (t *Table[T]) Find(match func(T) bool) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	rows, err := t.read()
	if err != nil {
		return zero, false, err
	}
	for _, row := range rows {
		if match(row) {
			return row, true, nil
		}
	}
	return zero, false, nil
}

// Insert appends records unconditionally.
func (t *Table[T]) Insert(items ...T) error {
	if len(items) == 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.read()
	if err != nil {
		return err
	}
	return t.write(append(rows, items...))
}

// Upsert inserts item when no record is accepted by match. When one is, the
// record is replaced only if overwrite is set. The boolean reports whether
// the table changed.
func (t *Table[T]) Upsert(item T, match func(T) bool, overwrite bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.read()
	if err != nil {
		return false, err
	}
	for i, row := range rows {
		if !match(row) {
			continue
		}
		if !overwrite {
			return false, nil
		}
		rows[i] = item
		if err := t.write(rows); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := t.write(append(rows, item)); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Table[T]) read() ([]T, error) {
	raw, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("jsondb: read %s: %w", t.path, err)
	}
	var doc document[T]
	if len(raw) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("jsondb: decode %s: %w", t.path, err)
	}
	return doc.Data, nil
}

func (t *Table[T]) write(rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	raw, err := json.MarshalIndent(document[T]{Data: rows}, "", "    ")
	if err != nil {
		return fmt.Errorf("jsondb: encode %s: %w", t.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsondb: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsondb: write %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsondb: close %s: %w", t.path, err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsondb: replace %s: %w", t.path, err)
	}
	return nil
}
