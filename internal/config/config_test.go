package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Log.Level)
	}
	if !cfg.Audit.Enabled {
		t.Fatal("expected audit enabled by default")
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if len(cfg.Policy.DangerousCommands) == 0 {
		t.Fatal("expected built-in dangerous command table")
	}
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"policy": {
			"zero_access_paths": ["/secret"],
			"dangerous_commands": [
				{"pattern": "halt", "reason": "shutdown", "ask": true}
			]
		},
		"log": {"level": "debug"}
	}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.Log.Level)
	}
	if len(cfg.Policy.ZeroAccessPaths) != 1 || cfg.Policy.ZeroAccessPaths[0] != "/secret" {
		t.Fatalf("unexpected zero-access paths: %v", cfg.Policy.ZeroAccessPaths)
	}
	if len(cfg.Policy.DangerousCommands) != 1 {
		t.Fatalf("expected the file table to replace the default table, got %d rules", len(cfg.Policy.DangerousCommands))
	}
	rule := cfg.Policy.DangerousCommands[0]
	if rule.Pattern != "halt" || rule.Reason != "shutdown" || !rule.Ask {
		t.Fatalf("unexpected rule: %+v", rule)
	}
}

func TestLoadFrom_BrokenPatternFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"policy": {"prompt_injection": [{"pattern": "([", "reason": "broken"}]}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected broken pattern to fail the load")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown log level to be rejected")
	}
}

func TestValidate_NormalizesLogLevelCase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = " WARN "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected normalized level warn, got %q", cfg.Log.Level)
	}
}

func TestRulesetConfig_ConvertsAllTables(t *testing.T) {
	p := PolicyConfig{
		DangerousCommands: []CommandRule{{Pattern: "a", Reason: "r", Ask: true}},
		ZeroAccessPaths:   []string{"/z"},
		ReadOnlyPaths:     []string{"/r"},
		NoDeletePaths:     []string{"/n"},
		WriteContentRules: []ContentRule{{FilePattern: "f", ContentPattern: "c", Reason: "w"}},
		PromptInjection:   []PromptRule{{Pattern: "p", Reason: "i"}},
	}
	out := p.RulesetConfig()

	if len(out.DangerousCommands) != 1 || !out.DangerousCommands[0].Ask {
		t.Fatalf("dangerous commands not converted: %+v", out.DangerousCommands)
	}
	if len(out.ZeroAccessPaths) != 1 || len(out.ReadOnlyPaths) != 1 || len(out.NoDeletePaths) != 1 {
		t.Fatal("path tables not converted")
	}
	if len(out.WriteContentRules) != 1 || out.WriteContentRules[0].FilePattern != "f" {
		t.Fatalf("content rules not converted: %+v", out.WriteContentRules)
	}
	if len(out.PromptInjection) != 1 || out.PromptInjection[0].Pattern != "p" {
		t.Fatalf("injection rules not converted: %+v", out.PromptInjection)
	}
}

func TestAuditDir_DefaultsUnderConfigDir(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.AuditDir(); got != filepath.Join(ConfigDir(), "state") {
		t.Fatalf("unexpected default audit dir: %q", got)
	}
	cfg.Audit.Dir = "/var/log/paiguard"
	if got := cfg.AuditDir(); got != "/var/log/paiguard" {
		t.Fatalf("expected explicit audit dir, got %q", got)
	}
}
