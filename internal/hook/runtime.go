package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/wardenhq/warden/internal/announce"
	"github.com/wardenhq/warden/internal/gate"
	"github.com/wardenhq/warden/internal/session"
	"github.com/wardenhq/warden/internal/speech"
	"github.com/wardenhq/warden/internal/transcript"
)

// Collaborator failures never fail a hook, so handler speech runs with
// fixed bounds beyond the configured default: bullet summaries get more
// room, task-start stays snappy.
const (
	summarySayTimeout = 15 * time.Second
	startSayTimeout   = 5 * time.Second
)

// EventLogger appends raw events to per-hook logs.
type EventLogger interface {
	Append(hook string, event any) error
}

// SessionStore loads and saves per-session records.
type SessionStore interface {
	Load(sessionID string) session.Data
	Save(data session.Data) error
}

// SpeakerSelector picks an available speech backend per call.
type SpeakerSelector interface {
	Select(timeout time.Duration) (speech.Speaker, bool)
	Primary(timeout time.Duration) (speech.Speaker, bool)
}

// Generator produces short generated messages by kind.
type Generator interface {
	Generate(ctx context.Context, kind string) (string, bool)
}

// Namer generates agent display names.
type Namer interface {
	AgentName(ctx context.Context) (string, bool)
}

// Runtime wires the collaborators hook handlers use. Nil collaborators
// disable their feature; handlers degrade instead of failing.
type Runtime struct {
	Logs     EventLogger
	Sessions SessionStore
	Policy   announce.Policy
	Phrases  *announce.Builder
	Voice    SpeakerSelector
	Gen      Generator
	Names    Namer
	Rules    []gate.PromptRule
	ChatPath string

	// SayTimeout bounds ordinary announcements; zero means the speech
	// package default.
	SayTimeout time.Duration
}

func (r *Runtime) append(hook string, ev Event) {
	if r.Logs == nil {
		return
	}
	if err := r.Logs.Append(hook, ev.Raw); err != nil {
		slog.Warn("hook log append failed", "hook", hook, "error", err)
	}
}

func (r *Runtime) say(ctx context.Context, text string, timeout time.Duration) {
	if r.Voice == nil || text == "" {
		return
	}
	speaker, ok := r.Voice.Select(timeout)
	if !ok {
		return
	}
	if err := speaker.Say(ctx, text); err != nil {
		slog.Debug("speech helper failed", "error", err)
	}
}

func (r *Runtime) sayTimeout() time.Duration {
	if r.SayTimeout > 0 {
		return r.SayTimeout
	}
	return speech.DefaultTimeout
}

func (r *Runtime) copyTranscript(src string) {
	if src == "" || r.ChatPath == "" {
		return
	}
	if err := transcript.Copy(src, r.ChatPath); err != nil {
		slog.Warn("transcript copy failed", "source", src, "error", err)
	}
}
