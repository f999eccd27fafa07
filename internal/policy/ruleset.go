package policy

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

// CommandRule is one dangerous-command entry. Order matters: the first
// matching rule decides. Ask escalates to confirmation instead of a block.
type CommandRule struct {
	Pattern string
	Reason  string
	Ask     bool
}

// ContentRule blocks written content matching ContentPattern, but only
// when the target path matches FilePattern.
type ContentRule struct {
	FilePattern    string
	ContentPattern string
	Reason         string
}

// PromptRule is one prompt-injection signature.
type PromptRule struct {
	Pattern string
	Reason  string
}

// Config is the policy input contract shared by all guards. Absent lists
// never match: the guards fail open for unconfigured categories.
type Config struct {
	DangerousCommands []CommandRule
	ZeroAccessPaths   []string
	ReadOnlyPaths     []string
	NoDeletePaths     []string
	WriteContentRules []ContentRule
	PromptInjection   []PromptRule

	// Home overrides the resolved home directory for ~ specifiers.
	// Empty means os.UserHomeDir.
	Home string
	// Env overrides environment lookup for $VAR specifiers. Nil means
	// the process environment.
	Env Env
}

type compiledCommandRule struct {
	re     *regexp.Regexp
	reason string
	ask    bool
}

type compiledContentRule struct {
	file    *regexp.Regexp
	content *regexp.Regexp
	reason  string
}

type compiledPromptRule struct {
	re     *regexp.Regexp
	reason string
}

// Ruleset is a Config with every regex compiled and every path specifier
// expanded. It is immutable after construction and safe for concurrent
// use; evaluation never mutates it.
type Ruleset struct {
	home       string
	dangerous  []compiledCommandRule
	zeroAccess []compiledSpecifier
	readOnly   []compiledSpecifier
	noDelete   []compiledSpecifier
	content    []compiledContentRule
	injection  []compiledPromptRule
}

// NewRuleset compiles the configuration once, up front. Every broken rule
// is reported; a single compile failure fails the whole load so a broken
// rule cannot silently vanish from the table.
func NewRuleset(cfg Config) (*Ruleset, error) {
	home := cfg.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	rs := &Ruleset{home: home}
	var errs []error

	for _, rule := range cfg.DangerousCommands {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			errs = append(errs, &RuleError{Table: "dangerous-command", Pattern: rule.Pattern, Err: err})
			continue
		}
		rs.dangerous = append(rs.dangerous, compiledCommandRule{re: re, reason: rule.Reason, ask: rule.Ask})
	}

	compilePaths := func(raw []string) []compiledSpecifier {
		compiled, specErrs := CompileSpecifiers(ExpandSpecifiers(raw, home, cfg.Env))
		errs = append(errs, specErrs...)
		return compiled
	}
	rs.zeroAccess = compilePaths(cfg.ZeroAccessPaths)
	rs.readOnly = compilePaths(cfg.ReadOnlyPaths)
	rs.noDelete = compilePaths(cfg.NoDeletePaths)

	for _, rule := range cfg.WriteContentRules {
		file, err := regexp.Compile("(?i)" + rule.FilePattern)
		if err != nil {
			errs = append(errs, &RuleError{Table: "write-content file", Pattern: rule.FilePattern, Err: err})
			continue
		}
		content, err := regexp.Compile(rule.ContentPattern)
		if err != nil {
			errs = append(errs, &RuleError{Table: "write-content", Pattern: rule.ContentPattern, Err: err})
			continue
		}
		rs.content = append(rs.content, compiledContentRule{file: file, content: content, reason: rule.Reason})
	}

	for _, rule := range cfg.PromptInjection {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			errs = append(errs, &RuleError{Table: "prompt-injection", Pattern: rule.Pattern, Err: err})
			continue
		}
		rs.injection = append(rs.injection, compiledPromptRule{re: re, reason: rule.Reason})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rs, nil
}

// expandCandidate resolves a leading ~ on a candidate path so that
// home-relative arguments line up with expanded specifiers. Anything else
// passes through untouched: candidates are expected to be pre-resolved.
func (rs *Ruleset) expandCandidate(path string) string {
	if rs.home == "" {
		return path
	}
	if path == "~" {
		return rs.home
	}
	if strings.HasPrefix(path, "~/") {
		return rs.home + path[1:]
	}
	return path
}
