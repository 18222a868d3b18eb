package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/speech"
	"github.com/wardenhq/warden/internal/textgen"
)

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show Warden configuration status",
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Emit status as JSON")
	return cmd
}

type helperState struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
	Active     bool   `json:"active,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd != nil {
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printStatusJSON(cfg)
		}
	}

	fmt.Println("=== Warden Status ===")
	fmt.Println()

	fmt.Printf("Config: %s\n", config.ConfigPath())
	if _, err := os.Stat(config.ConfigPath()); err == nil {
		fmt.Println("  Status: OK")
	} else {
		fmt.Println("  Status: Not found (run 'warden init')")
	}

	engineer := cfg.EngineerName()
	if engineer == "" {
		engineer = "(not set)"
	}
	fmt.Printf("\nEngineer: %s\n", engineer)

	mode := "spoken output"
	if cfg.Speech.Silent {
		mode = "silent mode"
	}
	fmt.Printf("\nSpeech: %s (%s)\n", cfg.Speech.HelperDir, mode)
	for _, s := range speechStates(cfg) {
		fmt.Printf("  %s: %s\n", s.Name, stateLine(s))
	}

	fmt.Printf("\nGenerator: %s\n", cfg.Generate.HelperDir)
	for _, s := range generatorStates(cfg) {
		fmt.Printf("  %s: %s\n", s.Name, stateLine(s))
	}

	fmt.Println("\nHooks:")
	fmt.Printf("  Logs: %s\n", cfg.Hooks.LogsDir)
	fmt.Printf("  Sessions: %s\n", cfg.Hooks.SessionsDir)
	fmt.Printf("  Blocked prompt patterns: %d\n", len(cfg.Prompt.Blocked))

	return nil
}

func printStatusJSON(cfg *config.Config) error {
	payload := map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"config_path":  config.ConfigPath(),
		"engineer":     cfg.EngineerName(),
		"speech": map[string]any{
			"helper_dir": cfg.Speech.HelperDir,
			"silent":     cfg.Speech.Silent,
			"backends":   speechStates(cfg),
		},
		"generate": map[string]any{
			"helper_dir": cfg.Generate.HelperDir,
			"candidates": generatorStates(cfg),
		},
		"hooks": map[string]any{
			"logs_dir":         cfg.Hooks.LogsDir,
			"sessions_dir":     cfg.Hooks.SessionsDir,
			"blocked_patterns": len(cfg.Prompt.Blocked),
		},
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func speechStates(cfg *config.Config) []helperState {
	states := make([]helperState, 0, len(speech.DefaultBackends))
	activeSet := false
	for _, b := range speech.DefaultBackends {
		ready := helperReady(cfg.Speech.HelperDir, b.Name, b.KeyEnv)
		s := helperState{Name: b.Name, Configured: ready}
		if ready && !activeSet {
			s.Active = true
			activeSet = true
		}
		states = append(states, s)
	}
	return states
}

func generatorStates(cfg *config.Config) []helperState {
	states := make([]helperState, 0, len(textgen.DefaultCandidates))
	activeSet := false
	for _, c := range textgen.DefaultCandidates {
		ready := helperReady(cfg.Generate.HelperDir, c.Name, c.KeyEnv)
		s := helperState{Name: c.Name, Configured: ready}
		if ready && !activeSet {
			s.Active = true
			activeSet = true
		}
		states = append(states, s)
	}
	return states
}

func helperReady(dir, name, keyEnv string) bool {
	if keyEnv != "" && os.Getenv(keyEnv) == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func stateLine(s helperState) string {
	if !s.Configured {
		return "Not configured"
	}
	if s.Active {
		return "Configured (active)"
	}
	return "Configured"
}
