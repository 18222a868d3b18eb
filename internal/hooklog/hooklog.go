// Package hooklog persists hook events as pretty-printed JSON arrays,
// one file per hook type.
package hooklog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultDir is the log location relative to the working directory.
const DefaultDir = "logs"

// Writer appends events to hook log files. A missing, corrupt, or
// non-array file is treated as an empty log and rewritten whole.
type Writer struct {
	mu  sync.Mutex
	dir string
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir}
}

// Dir returns the directory log files are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// Append adds one event to the named hook's log. The full array is
// rewritten through a temp file so readers never observe a partial log.
func (w *Writer) Append(hook string, event any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	path := w.Path(hook)
	entries := readEntries(path)
	entries = append(entries, event)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode log: %w", err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Read returns the decoded entries of the named hook's log. Missing or
// corrupt files read as empty.
func (w *Writer) Read(hook string) []any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return readEntries(w.Path(hook))
}

// Path returns the log file location for a hook name.
func (w *Writer) Path(hook string) string {
	return filepath.Join(w.dir, hook+".json")
}

func readEntries(path string) []any {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []any{}
	}
	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []any{}
	}
	return entries
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
