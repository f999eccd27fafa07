package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/policy"
)

// Config root configuration
type Config struct {
	Policy PolicyConfig `mapstructure:"policy" json:"policy"`
	Log    LogConfig    `mapstructure:"log" json:"log"`
	Audit  AuditConfig  `mapstructure:"audit" json:"audit"`
}

// PolicyConfig holds the five rule tables consumed by the guards.
// Missing keys default to empty lists, never to an error.
type PolicyConfig struct {
	DangerousCommands []CommandRule `mapstructure:"dangerous_commands" json:"dangerous_commands"`
	ZeroAccessPaths   []string      `mapstructure:"zero_access_paths" json:"zero_access_paths"`
	ReadOnlyPaths     []string      `mapstructure:"read_only_paths" json:"read_only_paths"`
	NoDeletePaths     []string      `mapstructure:"no_delete_paths" json:"no_delete_paths"`
	WriteContentRules []ContentRule `mapstructure:"write_content_rules" json:"write_content_rules"`
	PromptInjection   []PromptRule  `mapstructure:"prompt_injection" json:"prompt_injection"`
}

// CommandRule is one ordered dangerous-command entry.
type CommandRule struct {
	Pattern string `mapstructure:"pattern" json:"pattern"`
	Reason  string `mapstructure:"reason" json:"reason"`
	Ask     bool   `mapstructure:"ask" json:"ask,omitempty"`
}

// ContentRule scopes a dangerous-content regex to a target file pattern.
type ContentRule struct {
	FilePattern    string `mapstructure:"file_pattern" json:"file_pattern"`
	ContentPattern string `mapstructure:"content_pattern" json:"content_pattern"`
	Reason         string `mapstructure:"reason" json:"reason"`
}

// PromptRule is one prompt-injection signature.
type PromptRule struct {
	Pattern string `mapstructure:"pattern" json:"pattern"`
	Reason  string `mapstructure:"reason" json:"reason"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file,omitempty"`
}

// AuditConfig decision log settings
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Dir     string `mapstructure:"dir" json:"dir,omitempty"`
}

// ConfigDir returns the paiguard config directory
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".paiguard")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads config from the default location or returns defaults when no
// file exists. An empty configuration is valid: every guard fails open.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads config from an explicit path. Viper accepts JSON or YAML
// by extension.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("PAIGUARD")
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

// Save saves config to the default location
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

// Validate checks configuration values and compiles every policy regex so
// authoring bugs surface at load time, not mid-decision.
func (c *Config) Validate() error {
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

	if _, err := policy.NewRuleset(c.Policy.RulesetConfig()); err != nil {
		return err
	}
	return nil
}

// RulesetConfig converts the on-disk policy tables into the guard input
// contract.
func (p PolicyConfig) RulesetConfig() policy.Config {
	out := policy.Config{
		ZeroAccessPaths: append([]string(nil), p.ZeroAccessPaths...),
		ReadOnlyPaths:   append([]string(nil), p.ReadOnlyPaths...),
		NoDeletePaths:   append([]string(nil), p.NoDeletePaths...),
	}
	for _, r := range p.DangerousCommands {
		out.DangerousCommands = append(out.DangerousCommands, policy.CommandRule{
			Pattern: r.Pattern,
			Reason:  r.Reason,
			Ask:     r.Ask,
		})
	}
	for _, r := range p.WriteContentRules {
		out.WriteContentRules = append(out.WriteContentRules, policy.ContentRule{
			FilePattern:    r.FilePattern,
			ContentPattern: r.ContentPattern,
			Reason:         r.Reason,
		})
	}
	for _, r := range p.PromptInjection {
		out.PromptInjection = append(out.PromptInjection, policy.PromptRule{
			Pattern: r.Pattern,
			Reason:  r.Reason,
		})
	}
	return out
}

// AuditDir returns the directory for the decision log.
func (c *Config) AuditDir() string {
	dir := strings.TrimSpace(c.Audit.Dir)
	if dir != "" {
		return dir
	}
	return filepath.Join(ConfigDir(), "state")
}
