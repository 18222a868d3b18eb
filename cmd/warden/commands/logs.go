package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/hooklog"
)

func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect captured hook events",
	}

	cmd.AddCommand(
		newLogsListCmd(),
		newLogsShowCmd(),
	)

	return cmd
}

func newLogsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hook logs and their sizes",
		RunE:  runLogsList,
	}
}

func newLogsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <hook>",
		Short: "Print the most recent events for one hook",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogsShow,
	}
	cmd.Flags().Int("limit", 10, "Number of events to show")
	return cmd
}

func runLogsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	writer := hooklog.NewWriter(cfg.Hooks.LogsDir)

	files, err := os.ReadDir(writer.Dir())
	if err != nil {
		fmt.Println("No hook logs yet.")
		return nil
	}

	type row struct {
		hook     string
		entries  int
		size     int64
		modified string
	}

	var rows []row
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		hookName := strings.TrimSuffix(name, ".json")
		if hookName == "chat" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		rows = append(rows, row{
			hook:     hookName,
			entries:  len(writer.Read(hookName)),
			size:     info.Size(),
			modified: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	if len(rows) == 0 {
		fmt.Println("No hook logs yet.")
		return nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].hook < rows[j].hook })

	var (
		headerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#8E4EC6")). // Purple
				Padding(0, 1).
				MarginBottom(1)

		// Column Widths
		wHook     = 20
		wEntries  = 8
		wSize     = 10
		wModified = 22

		colHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8E4EC6")).
				Bold(true).
				MarginRight(1)

		hookStyle = lipgloss.NewStyle().
				Width(wHook).
				MarginRight(1)

		entriesStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(wEntries).
				MarginRight(1)

		sizeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(wSize).
				MarginRight(1)

		modifiedStyle = lipgloss.NewStyle().
				Width(wModified).
				MarginRight(1)
	)

	fmt.Println(headerStyle.Render("Hook Logs"))

	headers := lipgloss.JoinHorizontal(lipgloss.Top,
		colHeaderStyle.Width(wHook).Render("HOOK"),
		colHeaderStyle.Width(wEntries).Render("ENTRIES"),
		colHeaderStyle.Width(wSize).Render("SIZE"),
		colHeaderStyle.Width(wModified).Render("MODIFIED"),
	)
	fmt.Printf("  %s\n", headers)

	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)
	separator := lipgloss.JoinHorizontal(lipgloss.Top,
		sepStyle.Render(strings.Repeat("─", wHook)),
		sepStyle.Render(strings.Repeat("─", wEntries)),
		sepStyle.Render(strings.Repeat("─", wSize)),
		sepStyle.Render(strings.Repeat("─", wModified)),
	)
	fmt.Printf("  %s\n", separator)

	for _, r := range rows {
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			hookStyle.Render(truncate(r.hook, wHook)),
			entriesStyle.Render(fmt.Sprintf("%d", r.entries)),
			sizeStyle.Render(humanSize(r.size)),
			modifiedStyle.Render(r.modified),
		)
		fmt.Printf("  %s\n", line)
	}

	fmt.Println()

	return nil
}

func runLogsShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = 10
	}

	hookName := strings.TrimSpace(args[0])
	entries := hooklog.NewWriter(cfg.Hooks.LogsDir).Read(hookName)
	if len(entries) == 0 {
		fmt.Printf("No entries for hook %q.\n", hookName)
		return nil
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
