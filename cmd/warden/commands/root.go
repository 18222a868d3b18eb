package commands

import (
	"github.com/spf13/cobra"
	"github.com/wardenhq/warden/internal/config"
)

var logLevelOverride string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "warden",
		Short:         "Warden - lifecycle hooks for coding agents",
		Long:          `Warden observes, gates, and voices the lifecycle events of an AI coding agent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" {
				return configureLogger(config.DefaultConfig(), logLevelOverride, false)
			}
			if isHookCommand(cmd) {
				// Hook handlers run inside the agent loop and must stay
				// quiet on stderr unless a log file is configured.
				cfg, err := config.Load()
				if err != nil {
					cfg = config.DefaultConfig()
				}
				if err := configureLogger(cfg, logLevelOverride, cfg.Log.File == ""); err != nil {
					return configureLogger(config.DefaultConfig(), "", true)
				}
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return configureLogger(cfg, logLevelOverride, false)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(
		NewInitCmd(),
		NewHookCmd(),
		NewStatusCmd(),
		NewLogsCmd(),
		NewChatCmd(),
		NewVersionCmd(),
	)

	return cmd
}

func isHookCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "hook" {
			return true
		}
	}
	return false
}
