package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// Operation is the dominant side effect a shell command was classified
// into. Classification selects which protection list applies.
type Operation string

const (
	OpDelete     Operation = "delete"
	OpWrite      Operation = "write"
	OpEdit       Operation = "edit"
	OpPermission Operation = "permission"
	OpRead       Operation = "read"
)

// classifierRules is a fixed priority-ordered table: delete verbs outrank
// write redirects, which outrank in-place edits, which outrank permission
// changes. Anything unmatched is treated as a read.
var classifierRules = []struct {
	op Operation
	re *regexp.Regexp
}{
	{OpDelete, regexp.MustCompile(`(?i)\b(rm|unlink|rmdir|shred|srm|wipe)\b`)},
	{OpDelete, regexp.MustCompile(`(?i)\bfind\b.*\s-delete\b`)},
	{OpWrite, regexp.MustCompile(`(^|[^0-9>])>{1,2}\s*\S`)},
	{OpWrite, regexp.MustCompile(`(?i)\b(tee|touch|mkdir|cp|mv|install|truncate|dd)\b`)},
	{OpEdit, regexp.MustCompile(`(?i)\b(sed|perl)\s+(-[a-z]*\s+)*-[a-z]*i`)},
	{OpEdit, regexp.MustCompile(`(?i)\bpatch\b`)},
	{OpPermission, regexp.MustCompile(`(?i)\b(chmod|chown|chgrp|chattr|setfacl)\b`)},
}

// ClassifyOperation returns the dominant operation for a raw command.
func ClassifyOperation(raw string) Operation {
	for _, rule := range classifierRules {
		if rule.re.MatchString(raw) {
			return rule.op
		}
	}
	return OpRead
}

// ExtractPaths scans the tokens of a raw command for path-like arguments:
// absolute, home-relative, and explicit relative paths, inside or outside
// quotes. Flags are excluded and the result is deduplicated. This is a
// heuristic token scan, not a shell parser; pipes and substitutions are
// not interpreted.
func ExtractPaths(raw string) []string {
	var paths []string
	seen := make(map[string]struct{})
	add := func(tok string) {
		tok = strings.Trim(tok, `"'`)
		tok = strings.TrimRight(tok, ";,)")
		if !looksLikePath(tok) {
			return
		}
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		paths = append(paths, tok)
	}

	for _, tok := range tokenize(raw) {
		if strings.HasPrefix(tok, "-") {
			continue
		}
		// Redirect targets arrive glued to the operator (>out, >>~/log).
		tok = strings.TrimLeft(tok, "><")
		add(tok)
	}
	return paths
}

func looksLikePath(tok string) bool {
	if len(tok) < 2 {
		return tok == "/" || tok == "~"
	}
	return strings.HasPrefix(tok, "/") ||
		strings.HasPrefix(tok, "~/") ||
		strings.HasPrefix(tok, "./") ||
		strings.HasPrefix(tok, "../")
}

// tokenize splits on whitespace while keeping quoted runs together.
func tokenize(raw string) []string {
	var tokens []string
	var cur strings.Builder
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ' ' || c == '\t' || c == '\n':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens
}

// EvaluateCommand decides whether a raw shell command may run.
// The dangerous-pattern table is consulted first and short-circuits;
// otherwise extracted paths are checked against the protection lists
// selected by the command's classified operation.
func (rs *Ruleset) EvaluateCommand(raw string) Verdict {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Allow()
	}

	// First match wins per severity; a blocking rule anywhere in the
	// table outranks an earlier ask rule, so BLOCK > ASK always holds.
	var askReason string
	for _, rule := range rs.dangerous {
		if !rule.re.MatchString(raw) {
			continue
		}
		if !rule.ask {
			return Block(rule.reason)
		}
		if askReason == "" {
			askReason = rule.reason
		}
	}
	if askReason != "" {
		return Ask(askReason)
	}

	paths := ExtractPaths(raw)
	if len(paths) == 0 {
		return Allow()
	}
	op := ClassifyOperation(raw)

	for _, extracted := range paths {
		path := rs.expandCandidate(extracted)
		if MatchesAny(path, rs.zeroAccess) {
			return Block(pathViolation(CategoryZeroAccess, path))
		}
		switch op {
		case OpDelete:
			if MatchesAny(path, rs.noDelete) {
				return Block(pathViolation(CategoryNoDelete, path))
			}
		case OpWrite, OpEdit:
			if MatchesAny(path, rs.readOnly) {
				return Block(pathViolation(CategoryReadOnly, path))
			}
		}
	}
	return Allow()
}

func pathViolation(category PathCategory, path string) string {
	return fmt.Sprintf("%s path violation: %s", category, path)
}
