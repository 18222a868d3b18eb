package hook

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/wardenhq/warden/internal/announce"
	"github.com/wardenhq/warden/internal/classify"
	"github.com/wardenhq/warden/internal/gate"
)

// completionVerbatimMax is the length under which a completion message is
// spoken as-is rather than replaced with a generic phrase.
const completionVerbatimMax = 50

// HandlePreToolUse gates a proposed tool call. A denial returns before
// the event is logged; allowed calls are logged and proceed.
func (r *Runtime) HandlePreToolUse(ctx context.Context, ev Event) error {
	if req, ok := actionRequest(ev); ok {
		if d := gate.Evaluate(req); !d.Allowed {
			return &BlockError{Prefix: BlockPrefixGate, Reason: d.Reason}
		}
	}
	r.append(PreToolUse, ev)
	return nil
}

// HandlePostToolUse logs the event, classifies the message, and
// announces it when the policy allows.
func (r *Runtime) HandlePostToolUse(ctx context.Context, ev Event) error {
	r.append(PostToolUse, ev)
	if ev.Message == "" || r.Phrases == nil {
		return nil
	}
	category := classify.Detect(ev.Message)
	if !r.Policy.Enabled(category) {
		return nil
	}

	switch category {
	case classify.CategorySummary:
		if bullets := classify.ExtractBullets(ev.Message); len(bullets) > 0 {
			r.say(ctx, announce.JoinBullets(bullets), summarySayTimeout)
		}
	case classify.CategoryGreeting:
		r.say(ctx, r.Phrases.Greeting(), r.sayTimeout())
	case classify.CategoryConfirmation, classify.CategoryCompletion:
		message := ev.Message
		if utf8.RuneCountInString(message) >= completionVerbatimMax {
			message = ""
		}
		r.say(ctx, r.Phrases.Completion(message), r.sayTimeout())
	case classify.CategoryNotification:
		r.say(ctx, r.Phrases.Notification(), r.sayTimeout())
	case classify.CategoryError, classify.CategoryQuestion, classify.CategoryStatusUpdate:
		r.say(ctx, announce.Excerpt(ev.Message), r.sayTimeout())
	}
	return nil
}

// HandleNotification logs the event and, with notify, voices the
// needs-input phrase.
func (r *Runtime) HandleNotification(ctx context.Context, ev Event, notify bool) error {
	r.append(Notification, ev)
	if notify && r.Phrases != nil {
		r.say(ctx, r.Phrases.Notification(), r.sayTimeout())
	}
	return nil
}

// HandleStop logs the session end, optionally copies the transcript, and
// optionally announces completion with a generated message.
func (r *Runtime) HandleStop(ctx context.Context, ev Event, chat, notify bool) error {
	r.append(Stop, ev)
	if chat {
		r.copyTranscript(ev.TranscriptPath)
	}
	if notify && r.Phrases != nil {
		message, ok := "", false
		if r.Gen != nil {
			message, ok = r.Gen.Generate(ctx, "completion")
		}
		if !ok {
			message = r.Phrases.FallbackCompletion()
		}
		r.say(ctx, message, r.sayTimeout())
	}
	return nil
}

// HandleSubagentStop mirrors HandleStop with a fixed phrase instead of a
// generated one.
func (r *Runtime) HandleSubagentStop(ctx context.Context, ev Event, chat, notify bool) error {
	r.append(SubagentStop, ev)
	if chat {
		r.copyTranscript(ev.TranscriptPath)
	}
	if notify {
		r.say(ctx, announce.SubagentComplete, r.sayTimeout())
	}
	return nil
}

// PromptOptions mirror the user-prompt-submit command flags.
type PromptOptions struct {
	Validate        bool
	LogOnly         bool
	StoreLastPrompt bool
	NameAgent       bool
	AnnounceStart   bool
}

// HandleUserPromptSubmit announces task start, logs the event, updates
// session state, and validates the prompt, in that order.
func (r *Runtime) HandleUserPromptSubmit(ctx context.Context, ev Event, opts PromptOptions) error {
	if opts.AnnounceStart && ev.Prompt != "" && r.Phrases != nil {
		r.announceTaskStart(ctx, ev.Prompt)
	}
	r.append(UserPromptSubmit, ev)
	if opts.StoreLastPrompt || opts.NameAgent {
		r.updateSession(ctx, ev.SessionID, ev.Prompt, opts.NameAgent)
	}
	if opts.Validate && !opts.LogOnly && ev.Prompt != "" {
		if d := gate.ValidatePrompt(ev.Prompt, r.Rules); !d.Allowed {
			return &BlockError{Prefix: BlockPrefixPrompt, Reason: d.Reason}
		}
	}
	return nil
}

// announceTaskStart speaks only through the primary backend; the point
// is a quick confirmation, not a guaranteed one.
func (r *Runtime) announceTaskStart(ctx context.Context, prompt string) {
	if r.Voice == nil {
		return
	}
	speaker, ok := r.Voice.Primary(startSayTimeout)
	if !ok {
		return
	}
	if err := speaker.Say(ctx, r.Phrases.TaskStart(prompt)); err != nil {
		slog.Debug("speech helper failed", "error", err)
	}
}

func (r *Runtime) updateSession(ctx context.Context, sessionID, prompt string, nameAgent bool) {
	if r.Sessions == nil {
		return
	}
	data := r.Sessions.Load(sessionID)
	data.Prompts = append(data.Prompts, prompt)
	if nameAgent && data.AgentName == "" && r.Names != nil {
		if name, ok := r.Names.AgentName(ctx); ok {
			data.AgentName = name
		}
	}
	if err := r.Sessions.Save(data); err != nil {
		slog.Warn("session save failed", "session", sessionID, "error", err)
	}
}

// actionRequest maps a tool event onto the gate's request shape. Tools
// outside the mapping are not gated.
func actionRequest(ev Event) (gate.Request, bool) {
	switch ev.ToolName {
	case "Bash":
		return gate.Request{Kind: gate.KindShellCommand, Command: ev.ToolInput.Command}, true
	case "Read":
		return gate.Request{Kind: gate.KindFileRead, FilePath: ev.ToolInput.FilePath}, true
	case "Write":
		return gate.Request{Kind: gate.KindFileWrite, FilePath: ev.ToolInput.FilePath}, true
	case "Edit", "MultiEdit":
		return gate.Request{Kind: gate.KindFileEdit, FilePath: ev.ToolInput.FilePath}, true
	}
	return gate.Request{}, false
}
