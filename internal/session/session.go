// Package session stores per-session agent state as JSON files.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the session location relative to the working directory.
const DefaultDir = ".claude/data/sessions"

// Data is one session's stored record.
type Data struct {
	SessionID string   `json:"session_id"`
	Prompts   []string `json:"prompts"`
	AgentName string   `json:"agent_name,omitempty"`
}

// Store reads and writes session records, one file per session id.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Load returns the stored record for a session, or a fresh one when the
// file is missing or unreadable.
func (s *Store) Load(sessionID string) Data {
	fresh := Data{SessionID: sessionID, Prompts: []string{}}
	raw, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		return fresh
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fresh
	}
	if data.SessionID == "" {
		data.SessionID = sessionID
	}
	if data.Prompts == nil {
		data.Prompts = []string{}
	}
	return data
}

// Save writes the record pretty-printed, replacing any previous file
// atomically.
func (s *Store) Save(data Data) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := writeFileAtomic(s.path(data.SessionID), raw, 0644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// path keeps session files flat even when ids carry path separators or
// colons.
func (s *Store) path(sessionID string) string {
	if sessionID == "" {
		sessionID = "unknown"
	}
	safe := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(sessionID)
	return filepath.Join(s.dir, safe+".json")
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
