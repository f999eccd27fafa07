package policy

import (
	"os"
	"strings"
)

// Specifier is a single protected-path entry after expansion. Expansion is
// a one-time pre-pass: the expanded text is what gets compared, so an
// environment value can never smuggle glob syntax into a literal rule.
type Specifier struct {
	// Raw is the text as configured.
	Raw string
	// Expanded has ~ and $VAR resolved. Unresolved variables stay literal.
	Expanded string
	// Glob is true when Raw contains glob metacharacters (*, ?, [).
	Glob bool
}

// Env resolves environment lookups during specifier expansion. It matches
// os.LookupEnv so tests can substitute a fixed map.
type Env func(key string) (string, bool)

// OSEnv reads from the process environment.
func OSEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ExpandSpecifiers expands every raw specifier once. home is the resolved
// home directory used for ~ entries; when empty, ~ entries stay literal.
func ExpandSpecifiers(raw []string, home string, env Env) []Specifier {
	if env == nil {
		env = OSEnv
	}
	specs := make([]Specifier, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		specs = append(specs, Specifier{
			Raw:      entry,
			Expanded: expandOne(entry, home, env),
			Glob:     hasGlobMeta(entry),
		})
	}
	return specs
}

func expandOne(entry, home string, env Env) string {
	if home != "" {
		if entry == "~" {
			return home
		}
		if strings.HasPrefix(entry, "~/") {
			return home + entry[1:]
		}
	}
	if strings.HasPrefix(entry, "$") {
		name, rest := splitVarName(entry[1:])
		if name != "" {
			if value, ok := env(name); ok && value != "" {
				return value + rest
			}
		}
	}
	return entry
}

// splitVarName reads a leading environment variable name (letters, digits,
// underscore) and returns it with the remainder of the specifier.
func splitVarName(s string) (name, rest string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			continue
		}
		return s[:i], s[i:]
	}
	return s, ""
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
