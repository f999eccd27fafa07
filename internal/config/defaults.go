package config

// DefaultConfig returns config with the built-in protection rule set.
// Hosts normally extend these tables rather than replace them.
func DefaultConfig() *Config {
	return &Config{
		Policy: PolicyConfig{
			DangerousCommands: defaultDangerousCommands(),
			ZeroAccessPaths: []string{
				"~/.ssh",
				"~/.aws/credentials",
				"~/.config/pai",
				"*.env",
			},
			ReadOnlyPaths: []string{
				"/etc",
				"/usr",
			},
			NoDeletePaths: []string{
				"~/.gitconfig",
				".git",
			},
			WriteContentRules: defaultWriteContentRules(),
			PromptInjection:   defaultPromptInjection(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

func defaultDangerousCommands() []CommandRule {
	return []CommandRule{
		// Catastrophic deletion and disk destruction
		{Pattern: `(?i)\brm\s+(-[a-z]*r[a-z]*f[a-z]*|-[a-z]*f[a-z]*r[a-z]*|--recursive)\s+[/~]`, Reason: "Catastrophic deletion detected"},
		{Pattern: `(?i)\brm\s+(-[a-z]*r[a-z]*f[a-z]*|--recursive)\s+\*`, Reason: "Catastrophic deletion detected"},
		{Pattern: `--no-preserve-root`, Reason: "Root safeguard removal detected"},
		{Pattern: `>\s*/dev/sd[a-z]`, Reason: "Disk overwrite attempt"},
		{Pattern: `(?i)\bmkfs(\.|\b)`, Reason: "Filesystem format attempt"},
		{Pattern: `(?i)\bdd\s+if=.*\bof=/dev/`, Reason: "Raw device write attempt"},
		// Fork bomb
		{Pattern: `:\(\)\s*\{.*\|.*&\s*\}\s*;`, Reason: "Fork bomb detected"},
		// Reverse shells
		{Pattern: `(?i)\bbash\s+-i\s+>&\s*/dev/tcp`, Reason: "Reverse shell pattern detected"},
		{Pattern: `(?i)\bnc\s+(-e|--exec)\s+/bin/(ba)?sh`, Reason: "Netcat shell attempt"},
		// Data exfiltration
		{Pattern: `(?i)\bcurl\b.*(\s@|--upload-file)`, Reason: "Data exfiltration pattern detected"},
		{Pattern: `(?i)\bwget\b.*(--post-file|--post-data)`, Reason: "Data exfiltration pattern detected"},
		// Infrastructure protection
		{Pattern: `(?i)\brm\b.*\.config/pai`, Reason: "Infrastructure protection triggered"},
		// Confirmation-worthy but not always fatal
		{Pattern: `(?i)\bsudo\s+rm\b`, Reason: "Privileged deletion requires confirmation", Ask: true},
		{Pattern: `(?i)\bgit\s+push\s+.*--force\b`, Reason: "Force push requires confirmation", Ask: true},
	}
}

func defaultWriteContentRules() []ContentRule {
	return []ContentRule{
		{
			FilePattern:    `\.(sh|bash|zsh)$`,
			ContentPattern: `(?i)(curl|wget)\s+[^\n|;]*\|\s*(ba|z)?sh`,
			Reason:         "remote code execution idiom in shell script",
		},
		{
			FilePattern:    `\.(sh|bash|zsh)$`,
			ContentPattern: `(?i)\brm\s+-[a-z]*rf[a-z]*\s+[/~]`,
			Reason:         "catastrophic deletion written into shell script",
		},
		{
			FilePattern:    `(^|/)\.(bashrc|bash_profile|zshrc|profile)$`,
			ContentPattern: `(?i)(curl|wget)\b`,
			Reason:         "network fetch written into shell startup file",
		},
	}
}

func defaultPromptInjection() []PromptRule {
	return []PromptRule{
		{Pattern: `(?i)ignore\s+(all\s+)?(previous|prior)\s+instructions`, Reason: "instruction override attempt"},
		{Pattern: `(?i)disregard\s+(all\s+)?(previous|prior|your)\s+instructions`, Reason: "instruction override attempt"},
		{Pattern: `(?i)your\s+new\s+instructions\s+are`, Reason: "instruction override attempt"},
		{Pattern: `(?i)forget\s+what\s+you\s+were\s+doing`, Reason: "instruction override attempt"},
		{Pattern: `(?i)system\s+override`, Reason: "fake mode switch attempt"},
		{Pattern: `(?i)you\s+are\s+now\s+in\s+(developer|debug|jailbreak|god)\s*mode`, Reason: "fake mode switch attempt"},
		{Pattern: `(?im)^\s*new\s+instructions\s*:`, Reason: "injected instruction prefix"},
		{Pattern: `(?im)^\s*system\s+prompt\s*:`, Reason: "injected instruction prefix"},
		{Pattern: `<\|im_start\|>|<\|im_end\|>|\[INST\]|<<SYS>>`, Reason: "fabricated chat control tokens"},
	}
}
