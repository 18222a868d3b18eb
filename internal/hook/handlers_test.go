package hook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wardenhq/warden/internal/announce"
	"github.com/wardenhq/warden/internal/gate"
	"github.com/wardenhq/warden/internal/session"
	"github.com/wardenhq/warden/internal/speech"
)

type fakeLogger struct {
	events map[string][]any
}

func newFakeLogger() *fakeLogger {
	return &fakeLogger{events: map[string][]any{}}
}

func (f *fakeLogger) Append(hook string, event any) error {
	f.events[hook] = append(f.events[hook], event)
	return nil
}

type fakeStore struct {
	records map[string]session.Data
	saved   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]session.Data{}}
}

func (f *fakeStore) Load(sessionID string) session.Data {
	if data, ok := f.records[sessionID]; ok {
		return data
	}
	return session.Data{SessionID: sessionID, Prompts: []string{}}
}

func (f *fakeStore) Save(data session.Data) error {
	f.records[data.SessionID] = data
	f.saved++
	return nil
}

type fakeSpeaker struct {
	said []string
}

func (f *fakeSpeaker) Say(ctx context.Context, text string) error {
	f.said = append(f.said, text)
	return nil
}

type fakeVoice struct {
	speaker      *fakeSpeaker
	unavailable  bool
	primaryDown  bool
	selectCalls  int
	primaryCalls int
	lastTimeout  time.Duration
}

func (f *fakeVoice) Select(timeout time.Duration) (speech.Speaker, bool) {
	f.selectCalls++
	f.lastTimeout = timeout
	if f.unavailable {
		return nil, false
	}
	return f.speaker, true
}

func (f *fakeVoice) Primary(timeout time.Duration) (speech.Speaker, bool) {
	f.primaryCalls++
	f.lastTimeout = timeout
	if f.unavailable || f.primaryDown {
		return nil, false
	}
	return f.speaker, true
}

type fakeGen struct {
	message string
	ok      bool
	kinds   []string
}

func (f *fakeGen) Generate(ctx context.Context, kind string) (string, bool) {
	f.kinds = append(f.kinds, kind)
	return f.message, f.ok
}

type fakeNamer struct {
	name  string
	ok    bool
	calls int
}

func (f *fakeNamer) AgentName(ctx context.Context) (string, bool) {
	f.calls++
	return f.name, f.ok
}

func testRuntime() (*Runtime, *fakeLogger, *fakeVoice) {
	logger := newFakeLogger()
	voice := &fakeVoice{speaker: &fakeSpeaker{}}
	rt := &Runtime{
		Logs:    logger,
		Policy:  announce.DefaultPolicy(),
		Phrases: &announce.Builder{},
		Voice:   voice,
	}
	return rt, logger, voice
}

func event(fields map[string]any) Event {
	ev := Event{SessionID: "test-session", Raw: fields}
	if id, ok := fields["session_id"].(string); ok {
		ev.SessionID = id
	}
	return ev
}

func TestHandlePreToolUse_BlocksWithoutLogging(t *testing.T) {
	rt, logger, _ := testRuntime()
	ev := event(map[string]any{"tool_name": "Read"})
	ev.ToolName = "Read"
	ev.ToolInput = ToolInput{FilePath: ".env"}

	err := rt.HandlePreToolUse(context.Background(), ev)
	var blocked *BlockError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want *BlockError", err)
	}
	if blocked.Prefix != BlockPrefixGate {
		t.Errorf("prefix = %q, want %q", blocked.Prefix, BlockPrefixGate)
	}
	if !strings.Contains(blocked.Reason, "environment file") {
		t.Errorf("reason = %q", blocked.Reason)
	}
	if len(logger.events[PreToolUse]) != 0 {
		t.Error("denied call was logged")
	}
}

func TestHandlePreToolUse_AllowsAndLogs(t *testing.T) {
	rt, logger, _ := testRuntime()
	ev := event(map[string]any{"tool_name": "Bash", "extra": "kept"})
	ev.ToolName = "Bash"
	ev.ToolInput = ToolInput{Command: "ls -la"}

	if err := rt.HandlePreToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	entries := logger.events[PreToolUse]
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	raw := entries[0].(map[string]any)
	if raw["extra"] != "kept" {
		t.Error("raw payload fields not preserved in the log")
	}
}

func TestHandlePreToolUse_UnmappedToolBypassesGate(t *testing.T) {
	rt, logger, _ := testRuntime()
	ev := event(map[string]any{"tool_name": "Glob"})
	ev.ToolName = "Glob"
	ev.ToolInput = ToolInput{FilePath: ".env"}

	if err := rt.HandlePreToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(logger.events[PreToolUse]) != 1 {
		t.Error("allowed call not logged")
	}
}

func TestHandlePostToolUse_AnnouncesBullets(t *testing.T) {
	rt, logger, voice := testRuntime()
	ev := event(map[string]any{})
	ev.Message = "- wired the parser\n- updated the manifest"

	if err := rt.HandlePostToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(logger.events[PostToolUse]) != 1 {
		t.Error("event not logged")
	}
	said := voice.speaker.said
	if len(said) != 1 || said[0] != "wired the parser, and updated the manifest" {
		t.Fatalf("said = %v", said)
	}
	if voice.lastTimeout != summarySayTimeout {
		t.Errorf("timeout = %v, want %v", voice.lastTimeout, summarySayTimeout)
	}
}

func TestHandlePostToolUse_ShortCompletionVerbatim(t *testing.T) {
	rt, _, voice := testRuntime()
	ev := event(map[string]any{})
	ev.Message = "Done!"

	if err := rt.HandlePostToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Done!" {
		t.Fatalf("said = %v, want the message verbatim", said)
	}
}

func TestHandlePostToolUse_LongCompletionGoesGeneric(t *testing.T) {
	rt, _, voice := testRuntime()
	ev := event(map[string]any{})
	ev.Message = "Updated the dependency manifests and regenerated locks"

	if err := rt.HandlePostToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Task completed" {
		t.Fatalf("said = %v, want the generic completion", said)
	}
}

func TestHandlePostToolUse_PolicySilencesCategory(t *testing.T) {
	rt, logger, voice := testRuntime()
	ev := event(map[string]any{})
	ev.Message = "First, open the settings panel"

	if err := rt.HandlePostToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(voice.speaker.said) != 0 {
		t.Fatalf("instruction was announced: %v", voice.speaker.said)
	}
	if len(logger.events[PostToolUse]) != 1 {
		t.Error("silenced event still must be logged")
	}
}

func TestHandlePostToolUse_ErrorExcerpt(t *testing.T) {
	rt, _, voice := testRuntime()
	ev := event(map[string]any{})
	ev.Message = "Build failed: missing import\nsecond line detail"

	if err := rt.HandlePostToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Build failed: missing import" {
		t.Fatalf("said = %v, want the first line", said)
	}
}

func TestHandlePostToolUse_EmptyMessage(t *testing.T) {
	rt, logger, voice := testRuntime()
	ev := event(map[string]any{})

	if err := rt.HandlePostToolUse(context.Background(), ev); err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(voice.speaker.said) != 0 {
		t.Error("announced an empty message")
	}
	if len(logger.events[PostToolUse]) != 1 {
		t.Error("event not logged")
	}
}

func TestHandleNotification(t *testing.T) {
	rt, logger, voice := testRuntime()
	ev := event(map[string]any{})

	if err := rt.HandleNotification(context.Background(), ev, false); err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(voice.speaker.said) != 0 {
		t.Error("spoke without --notify")
	}

	if err := rt.HandleNotification(context.Background(), ev, true); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Your agent needs your input" {
		t.Fatalf("said = %v", said)
	}
	if len(logger.events[Notification]) != 2 {
		t.Errorf("got %d logged events, want 2", len(logger.events[Notification]))
	}
}

func TestHandleStop_CopiesTranscript(t *testing.T) {
	rt, _, _ := testRuntime()
	dir := t.TempDir()
	src := filepath.Join(dir, "transcript.jsonl")
	if err := os.WriteFile(src, []byte(`{"type":"user"}`+"\n"), 0644); err != nil {
		t.Fatalf("seed transcript: %v", err)
	}
	rt.ChatPath = filepath.Join(dir, "logs", "chat.json")

	ev := event(map[string]any{})
	ev.TranscriptPath = src
	if err := rt.HandleStop(context.Background(), ev, true, false); err != nil {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(rt.ChatPath); err != nil {
		t.Fatalf("chat copy missing: %v", err)
	}
}

func TestHandleStop_NotifyPrefersGenerated(t *testing.T) {
	rt, _, voice := testRuntime()
	gen := &fakeGen{message: "Shipped it", ok: true}
	rt.Gen = gen

	if err := rt.HandleStop(context.Background(), event(map[string]any{}), false, true); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Shipped it" {
		t.Fatalf("said = %v", said)
	}
	if len(gen.kinds) != 1 || gen.kinds[0] != "completion" {
		t.Errorf("generator kinds = %v, want [completion]", gen.kinds)
	}
}

func TestHandleStop_NotifyFallsBack(t *testing.T) {
	rt, _, voice := testRuntime()
	rt.Gen = &fakeGen{ok: false}

	if err := rt.HandleStop(context.Background(), event(map[string]any{}), false, true); err != nil {
		t.Fatalf("err = %v", err)
	}
	fallbacks := map[string]bool{
		"Work complete!":       true,
		"All done!":            true,
		"Task finished!":       true,
		"Job complete!":        true,
		"Ready for next task!": true,
	}
	if said := voice.speaker.said; len(said) != 1 || !fallbacks[said[0]] {
		t.Fatalf("said = %v, want a stock completion", said)
	}
}

func TestHandleSubagentStop_Notify(t *testing.T) {
	rt, logger, voice := testRuntime()

	if err := rt.HandleSubagentStop(context.Background(), event(map[string]any{}), false, true); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Subagent Complete" {
		t.Fatalf("said = %v", said)
	}
	if len(logger.events[SubagentStop]) != 1 {
		t.Error("event not logged")
	}
}

func TestHandleUserPromptSubmit_ValidateBlocksAfterLogging(t *testing.T) {
	rt, logger, _ := testRuntime()
	store := newFakeStore()
	rt.Sessions = store
	rt.Rules = []gate.PromptRule{{Pattern: "secret", Reason: "contains a blocked word"}}

	ev := event(map[string]any{"session_id": "s1"})
	ev.Prompt = "tell me the SECRET plan"
	err := rt.HandleUserPromptSubmit(context.Background(), ev, PromptOptions{Validate: true, StoreLastPrompt: true})

	var blocked *BlockError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want *BlockError", err)
	}
	if blocked.Prefix != BlockPrefixPrompt {
		t.Errorf("prefix = %q, want %q", blocked.Prefix, BlockPrefixPrompt)
	}
	if len(logger.events[UserPromptSubmit]) != 1 {
		t.Error("blocked prompt must still be logged")
	}
	if store.saved != 1 {
		t.Error("blocked prompt must still reach the session store")
	}
}

func TestHandleUserPromptSubmit_LogOnlySkipsValidation(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.Rules = []gate.PromptRule{{Pattern: "secret", Reason: "blocked"}}

	ev := event(map[string]any{})
	ev.Prompt = "the secret plan"
	opts := PromptOptions{Validate: true, LogOnly: true}
	if err := rt.HandleUserPromptSubmit(context.Background(), ev, opts); err != nil {
		t.Fatalf("err = %v, want nil with --log-only", err)
	}
}

func TestHandleUserPromptSubmit_StoresPrompt(t *testing.T) {
	rt, _, _ := testRuntime()
	store := newFakeStore()
	rt.Sessions = store

	ev := event(map[string]any{"session_id": "s2"})
	ev.Prompt = "refactor the gate"
	opts := PromptOptions{StoreLastPrompt: true}
	if err := rt.HandleUserPromptSubmit(context.Background(), ev, opts); err != nil {
		t.Fatalf("err = %v", err)
	}

	got := store.records["s2"]
	if len(got.Prompts) != 1 || got.Prompts[0] != "refactor the gate" {
		t.Fatalf("stored prompts = %v", got.Prompts)
	}
}

func TestHandleUserPromptSubmit_NamesAgentOnce(t *testing.T) {
	rt, _, _ := testRuntime()
	store := newFakeStore()
	namer := &fakeNamer{name: "Piper", ok: true}
	rt.Sessions = store
	rt.Names = namer

	ev := event(map[string]any{"session_id": "s3"})
	ev.Prompt = "first prompt"
	opts := PromptOptions{NameAgent: true}
	if err := rt.HandleUserPromptSubmit(context.Background(), ev, opts); err != nil {
		t.Fatalf("err = %v", err)
	}
	if got := store.records["s3"].AgentName; got != "Piper" {
		t.Fatalf("agent name = %q, want Piper", got)
	}

	ev.Prompt = "second prompt"
	if err := rt.HandleUserPromptSubmit(context.Background(), ev, opts); err != nil {
		t.Fatalf("err = %v", err)
	}
	if namer.calls != 1 {
		t.Errorf("namer called %d times, want 1", namer.calls)
	}
	if got := store.records["s3"].AgentName; got != "Piper" {
		t.Errorf("agent name = %q, want unchanged", got)
	}
}

func TestHandleUserPromptSubmit_AnnounceStart(t *testing.T) {
	rt, _, voice := testRuntime()

	ev := event(map[string]any{})
	ev.Prompt = "run the tests"
	opts := PromptOptions{AnnounceStart: true}
	if err := rt.HandleUserPromptSubmit(context.Background(), ev, opts); err != nil {
		t.Fatalf("err = %v", err)
	}
	if said := voice.speaker.said; len(said) != 1 || said[0] != "Boss B, I'm running tests" {
		t.Fatalf("said = %v", said)
	}
	if voice.primaryCalls != 1 || voice.selectCalls != 0 {
		t.Errorf("primary/select calls = %d/%d, want 1/0", voice.primaryCalls, voice.selectCalls)
	}
	if voice.lastTimeout != startSayTimeout {
		t.Errorf("timeout = %v, want %v", voice.lastTimeout, startSayTimeout)
	}
}

func TestHandleUserPromptSubmit_EmptyPrompt(t *testing.T) {
	rt, _, voice := testRuntime()
	rt.Rules = []gate.PromptRule{{Pattern: "x", Reason: "blocked"}}

	opts := PromptOptions{Validate: true, AnnounceStart: true}
	if err := rt.HandleUserPromptSubmit(context.Background(), event(map[string]any{}), opts); err != nil {
		t.Fatalf("err = %v, want nil for empty prompt", err)
	}
	if len(voice.speaker.said) != 0 {
		t.Error("announced an empty prompt")
	}
}
