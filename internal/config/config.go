package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config root configuration
type Config struct {
	Engineer EngineerConfig `mapstructure:"engineer"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Generate GenerateConfig `mapstructure:"generate"`
	Hooks    HooksConfig    `mapstructure:"hooks"`
	Prompt   PromptConfig   `mapstructure:"prompt"`
	Log      LogConfig      `mapstructure:"log"`
}

// EngineerConfig identifies the person announcements address
type EngineerConfig struct {
	Name string `mapstructure:"name"`
}

// SpeechConfig text-to-speech helper settings
type SpeechConfig struct {
	HelperDir      string `mapstructure:"helper_dir"`
	Silent         bool   `mapstructure:"silent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// GenerateConfig message-generation helper settings
type GenerateConfig struct {
	HelperDir      string `mapstructure:"helper_dir"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// HooksConfig hook storage locations, relative to the project
type HooksConfig struct {
	LogsDir     string `mapstructure:"logs_dir"`
	SessionsDir string `mapstructure:"sessions_dir"`
}

// PromptConfig prompt validation settings
type PromptConfig struct {
	Blocked []BlockedPattern `mapstructure:"blocked"`
}

// BlockedPattern denies prompts containing Pattern (case-insensitive)
type BlockedPattern struct {
	Pattern string `mapstructure:"pattern"`
	Reason  string `mapstructure:"reason"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Engineer: EngineerConfig{
			Name: "",
		},
		Speech: SpeechConfig{
			HelperDir:      ".claude/hooks/tts",
			Silent:         true,
			TimeoutSeconds: 10,
		},
		Generate: GenerateConfig{
			HelperDir:      ".claude/hooks/llm",
			TimeoutSeconds: 10,
		},
		Hooks: HooksConfig{
			LogsDir:     "logs",
			SessionsDir: ".claude/data/sessions",
		},
		Prompt: PromptConfig{
			Blocked: []BlockedPattern{},
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// ConfigDir returns the warden config directory
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".warden")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads config from file or returns defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := ConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(cfg); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.MatchName = func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		}
	}); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalizeKey(input string) string {
	input = strings.ReplaceAll(input, "_", "")
	input = strings.ReplaceAll(input, "-", "")
	return strings.ToLower(input)
}

// Save saves config to file
func Save(cfg *Config) error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Validate checks that the configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Speech.TimeoutSeconds < 0 {
		return fmt.Errorf("speech.timeout_seconds must not be negative, got %d", c.Speech.TimeoutSeconds)
	}
	if c.Speech.TimeoutSeconds == 0 {
		c.Speech.TimeoutSeconds = 10
	}
	if c.Generate.TimeoutSeconds < 0 {
		return fmt.Errorf("generate.timeout_seconds must not be negative, got %d", c.Generate.TimeoutSeconds)
	}
	if c.Generate.TimeoutSeconds == 0 {
		c.Generate.TimeoutSeconds = 10
	}

	if strings.TrimSpace(c.Hooks.LogsDir) == "" {
		c.Hooks.LogsDir = "logs"
	}
	if strings.TrimSpace(c.Hooks.SessionsDir) == "" {
		c.Hooks.SessionsDir = ".claude/data/sessions"
	}

	for i, blocked := range c.Prompt.Blocked {
		if strings.TrimSpace(blocked.Pattern) == "" {
			return fmt.Errorf("prompt.blocked[%d].pattern must not be empty", i)
		}
		if strings.TrimSpace(blocked.Reason) == "" {
			c.Prompt.Blocked[i].Reason = "prompt contains a blocked pattern"
		}
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level == "" {
		c.Log.Level = "info"
	} else {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[level] {
			return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
		}
		c.Log.Level = level
	}

	return nil
}

// EngineerName resolves the name announcements address: the config value
// first, then the ENGINEER_NAME environment variable. Empty means
// unpersonalized announcements.
func (c *Config) EngineerName() string {
	if name := strings.TrimSpace(c.Engineer.Name); name != "" {
		return name
	}
	return strings.TrimSpace(os.Getenv("ENGINEER_NAME"))
}

// SpeechTimeout returns the per-call bound for speech helpers.
func (c *Config) SpeechTimeout() time.Duration {
	return time.Duration(c.Speech.TimeoutSeconds) * time.Second
}

// GenerateTimeout returns the per-call bound for generation helpers.
func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.Generate.TimeoutSeconds) * time.Second
}
