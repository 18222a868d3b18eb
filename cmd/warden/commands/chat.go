package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/render"
	"github.com/wardenhq/warden/internal/transcript"
)

func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Show the captured chat transcript",
		RunE:  runChat,
	}
	cmd.Flags().Bool("thinking", false, "Include the agent's reasoning turns")
	return cmd
}

type renderer interface {
	Render(string) (string, error)
}

// plainRenderer stands in when the terminal renderer cannot be built.
type plainRenderer struct{}

func (plainRenderer) Render(s string) (string, error) { return s + "\n", nil }

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	showThinking := false
	if cmd != nil {
		showThinking, _ = cmd.Flags().GetBool("thinking")
	}

	chatPath := filepath.Join(cfg.Hooks.LogsDir, "chat.json")
	entries := transcript.Entries(chatPath)
	if len(entries) == 0 {
		fmt.Println("No chat transcript captured yet.")
		fmt.Println("Run the stop hook with --chat to copy one here.")
		return nil
	}

	var r renderer
	if tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
		r = tr
	} else {
		r = plainRenderer{}
	}

	fmt.Print(renderChatLog(entries, r, showThinking))
	return nil
}

var (
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E8B57"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8E4EC6"))
	thinkingStyle       = lipgloss.NewStyle().Faint(true)
)

func renderChatLog(entries []any, r renderer, showThinking bool) string {
	var sb strings.Builder
	for _, entry := range entries {
		msg, ok := render.FromEntry(entry)
		if !ok {
			continue
		}
		if msg.Text == "" && !showThinking {
			continue
		}

		label := userLabelStyle.Render("You")
		if msg.Role != "user" {
			label = assistantLabelStyle.Render("Agent")
		}
		sb.WriteString(label)
		sb.WriteString("\n")

		if showThinking && msg.Thinking != "" {
			sb.WriteString(thinkingStyle.Render(msg.Thinking))
			sb.WriteString("\n")
		}
		if msg.Text != "" {
			body, err := r.Render(msg.Text)
			if err != nil {
				body = msg.Text + "\n"
			}
			sb.WriteString(body)
		}
	}
	return sb.String()
}
