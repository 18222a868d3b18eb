// Package hook implements the lifecycle handlers the host agent tool
// invokes: one JSON event in on stdin, an exit status out. Everything a
// handler touches beyond the gate is best-effort; only policy denials
// surface, as *BlockError.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Canonical hook names, used for log files and command wiring.
const (
	PreToolUse       = "pre_tool_use"
	PostToolUse      = "post_tool_use"
	Notification     = "notification"
	Stop             = "stop"
	SubagentStop     = "subagent_stop"
	UserPromptSubmit = "user_prompt_submit"
)

// Event is one decoded hook payload. Raw holds the payload verbatim so
// logs preserve fields this version does not recognize.
type Event struct {
	SessionID      string    `json:"session_id"`
	TranscriptPath string    `json:"transcript_path"`
	CWD            string    `json:"cwd"`
	HookEventName  string    `json:"hook_event_name"`
	ToolName       string    `json:"tool_name"`
	ToolInput      ToolInput `json:"tool_input"`
	Message        string    `json:"message"`
	Prompt         string    `json:"prompt"`
	StopHookActive bool      `json:"stop_hook_active"`

	Raw map[string]any `json:"-"`
}

// ToolInput carries the tool parameters the gate inspects.
type ToolInput struct {
	Command  string `json:"command"`
	FilePath string `json:"file_path"`
}

// ReadEvent decodes one event from r. Malformed input is an ordinary
// outcome for a hook; callers map the error to a clean exit.
func ReadEvent(r io.Reader) (Event, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Event{}, fmt.Errorf("read hook payload: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("decode hook payload: %w", err)
	}
	if err := json.Unmarshal(raw, &ev.Raw); err != nil {
		return Event{}, fmt.Errorf("decode hook payload: %w", err)
	}
	if ev.SessionID == "" {
		ev.SessionID = "unknown"
	}
	return ev, nil
}
