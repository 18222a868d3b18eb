package commands

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wardenhq/warden/internal/announce"
	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/gate"
	"github.com/wardenhq/warden/internal/hook"
	"github.com/wardenhq/warden/internal/hooklog"
	"github.com/wardenhq/warden/internal/session"
	"github.com/wardenhq/warden/internal/speech"
	"github.com/wardenhq/warden/internal/textgen"
)

// NewHookCmd groups the lifecycle hook handlers. Each subcommand reads
// one JSON event on stdin and exits 0 unless the event must be blocked.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Handle agent lifecycle events",
	}

	cmd.AddCommand(
		newPreToolUseCmd(),
		newPostToolUseCmd(),
		newNotificationCmd(),
		newStopCmd(),
		newSubagentStopCmd(),
		newUserPromptSubmitCmd(),
	)

	return cmd
}

func newPreToolUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pre-tool-use",
		Short: "Gate a proposed tool call",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error {
				return rt.HandlePreToolUse(ctx, ev)
			})
		},
	}
}

func newPostToolUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post-tool-use",
		Short: "Log a finished tool call and announce its result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error {
				return rt.HandlePostToolUse(ctx, ev)
			})
		},
	}
}

func newNotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notification",
		Short: "Log an agent notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			notify, _ := cmd.Flags().GetBool("notify")
			return runHook(cmd, func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error {
				return rt.HandleNotification(ctx, ev, notify)
			})
		},
	}
	cmd.Flags().Bool("notify", false, "Voice the needs-input announcement")
	return cmd
}

func newStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Record the end of a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, _ := cmd.Flags().GetBool("chat")
			notify, _ := cmd.Flags().GetBool("notify")
			return runHook(cmd, func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error {
				return rt.HandleStop(ctx, ev, chat, notify)
			})
		},
	}
	cmd.Flags().Bool("chat", false, "Copy the session transcript into the log directory")
	cmd.Flags().Bool("notify", false, "Announce completion")
	return cmd
}

func newSubagentStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subagent-stop",
		Short: "Record the end of a subagent run",
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, _ := cmd.Flags().GetBool("chat")
			notify, _ := cmd.Flags().GetBool("notify")
			return runHook(cmd, func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error {
				return rt.HandleSubagentStop(ctx, ev, chat, notify)
			})
		},
	}
	cmd.Flags().Bool("chat", false, "Copy the session transcript into the log directory")
	cmd.Flags().Bool("notify", false, "Announce subagent completion")
	return cmd
}

func newUserPromptSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-prompt-submit",
		Short: "Log, validate, and announce a submitted prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := hook.PromptOptions{}
			opts.Validate, _ = cmd.Flags().GetBool("validate")
			opts.LogOnly, _ = cmd.Flags().GetBool("log-only")
			opts.StoreLastPrompt, _ = cmd.Flags().GetBool("store-last-prompt")
			opts.NameAgent, _ = cmd.Flags().GetBool("name-agent")
			opts.AnnounceStart, _ = cmd.Flags().GetBool("announce-start")
			return runHook(cmd, func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error {
				return rt.HandleUserPromptSubmit(ctx, ev, opts)
			})
		},
	}
	cmd.Flags().Bool("validate", false, "Reject prompts matching blocked patterns")
	cmd.Flags().Bool("log-only", false, "Log the prompt without validating")
	cmd.Flags().Bool("store-last-prompt", false, "Record the prompt in session data")
	cmd.Flags().Bool("name-agent", false, "Generate an agent name for new sessions")
	cmd.Flags().Bool("announce-start", false, "Announce the task before it runs")
	return cmd
}

// runHook decodes the stdin event and dispatches it. Unreadable input,
// config trouble, and panics all resolve to a clean exit so a broken
// hook never wedges the agent; only an explicit block surfaces as error.
func runHook(cmd *cobra.Command, fn func(ctx context.Context, rt *hook.Runtime, ev hook.Event) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("hook handler panicked", "panic", rec)
			err = nil
		}
	}()

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		slog.Warn("config load failed, using defaults", "error", cfgErr)
		cfg = config.DefaultConfig()
	}

	ev, readErr := hook.ReadEvent(cmd.InOrStdin())
	if readErr != nil {
		slog.Warn("unreadable hook payload", "error", readErr)
		return nil
	}

	return fn(cmd.Context(), newRuntime(cfg), ev)
}

func newRuntime(cfg *config.Config) *hook.Runtime {
	rules := make([]gate.PromptRule, 0, len(cfg.Prompt.Blocked))
	for _, b := range cfg.Prompt.Blocked {
		rules = append(rules, gate.PromptRule{Pattern: b.Pattern, Reason: b.Reason})
	}

	return &hook.Runtime{
		Logs:     hooklog.NewWriter(cfg.Hooks.LogsDir),
		Sessions: session.NewStore(cfg.Hooks.SessionsDir),
		Policy:   announce.DefaultPolicy(),
		Phrases:  &announce.Builder{Engineer: cfg.EngineerName()},
		Voice: speech.Selector{
			Dir:      cfg.Speech.HelperDir,
			Backends: speech.DefaultBackends,
			Silent:   cfg.Speech.Silent,
		},
		Gen:        textgen.NewChain(cfg.Generate.HelperDir, cfg.GenerateTimeout(), textgen.DefaultCandidates),
		Names:      textgen.NewChain(cfg.Generate.HelperDir, cfg.GenerateTimeout(), textgen.NameCandidates),
		Rules:      rules,
		ChatPath:   filepath.Join(cfg.Hooks.LogsDir, "chat.json"),
		SayTimeout: cfg.SpeechTimeout(),
	}
}
