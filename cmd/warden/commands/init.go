package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wardenhq/warden/internal/config"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize Warden configuration",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.ConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	cfg := config.DefaultConfig()

	dirs := []string{
		config.ConfigDir(),
		cfg.Hooks.LogsDir,
		cfg.Hooks.SessionsDir,
		cfg.Speech.HelperDir,
		cfg.Generate.HelperDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Warden initialized!\n")
	fmt.Printf("Config: %s\n", configPath)
	fmt.Printf("Logs: %s\n", cfg.Hooks.LogsDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("1. Edit %s to set your name and blocked prompt patterns\n", configPath)
	fmt.Printf("2. Register 'warden hook' subcommands in your agent's hook settings\n")
	fmt.Printf("3. Drop speech helpers into %s to enable voice\n", cfg.Speech.HelperDir)

	return nil
}
