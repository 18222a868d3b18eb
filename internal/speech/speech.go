// Package speech voices announcements through external helper
// executables. The core never talks to a TTS service directly; it picks
// the first available helper and hands it the text.
package speech

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultDir is where speech helpers live, relative to the working
// directory.
const DefaultDir = ".claude/hooks/tts"

// DefaultTimeout bounds one helper invocation.
const DefaultTimeout = 10 * time.Second

// Speaker voices one message.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// Backend describes one helper executable. KeyEnv names the API-key
// variable the backend needs; empty means none.
type Backend struct {
	Name   string
	KeyEnv string
}

// DefaultBackends is the selection order: hosted voices first, the
// keyless local engine last.
var DefaultBackends = []Backend{
	{Name: "elevenlabs", KeyEnv: "ELEVENLABS_API_KEY"},
	{Name: "openai", KeyEnv: "OPENAI_API_KEY"},
	{Name: "local"},
}

// Selector picks speakers from a helper directory. Silent forwards
// TTS_SILENT_MODE to helpers and discards their output.
type Selector struct {
	Dir      string
	Backends []Backend
	Silent   bool
}

// Select returns a speaker for the first backend whose key is present
// (or not required) and whose executable exists.
func (s Selector) Select(timeout time.Duration) (Speaker, bool) {
	return s.pick(s.Backends, timeout)
}

// Primary returns a speaker only when the top-priority backend is
// available.
func (s Selector) Primary(timeout time.Duration) (Speaker, bool) {
	if len(s.Backends) == 0 {
		return nil, false
	}
	return s.pick(s.Backends[:1], timeout)
}

func (s Selector) pick(backends []Backend, timeout time.Duration) (Speaker, bool) {
	dir := s.Dir
	if dir == "" {
		dir = DefaultDir
	}
	for _, b := range backends {
		if b.KeyEnv != "" && os.Getenv(b.KeyEnv) == "" {
			continue
		}
		path := filepath.Join(dir, b.Name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return &helperSpeaker{path: path, timeout: timeout, silent: s.Silent}, true
	}
	return nil, false
}

// helperSpeaker shells out to one helper executable per message.
type helperSpeaker struct {
	path    string
	timeout time.Duration
	silent  bool
}

// Say invokes the helper with text as its only argument. The helper's
// exit status is the whole result; its output is never parsed.
func (h *helperSpeaker) Say(ctx context.Context, text string) error {
	timeout := h.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, h.path, text)
	if h.silent {
		cmd.Env = append(os.Environ(), "TTS_SILENT_MODE=true")
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}
