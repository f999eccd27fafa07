package policy

import (
	"regexp"
	"strings"
)

// compiledSpecifier is a Specifier ready for matching. Glob specifiers
// carry a compiled regexp; literal specifiers compare by string.
type compiledSpecifier struct {
	spec Specifier
	re   *regexp.Regexp // nil for literal specifiers
}

// CompileSpecifiers turns expanded specifiers into matchers. A specifier
// whose glob fails to compile is reported individually so the caller can
// reject the configuration without losing the other rules.
func CompileSpecifiers(specs []Specifier) ([]compiledSpecifier, []error) {
	compiled := make([]compiledSpecifier, 0, len(specs))
	var errs []error
	for _, spec := range specs {
		cs := compiledSpecifier{spec: spec}
		if spec.Glob {
			re, err := regexp.Compile(globToRegexp(spec.Expanded))
			if err != nil {
				errs = append(errs, &SpecifierError{Specifier: spec.Raw, Err: err})
				continue
			}
			cs.re = re
		}
		compiled = append(compiled, cs)
	}
	return compiled, errs
}

// globToRegexp translates a glob specifier into an anchored,
// case-insensitive regexp. `*` matches any run of non-separator
// characters, `?` matches exactly one character, `[...]` classes pass
// through, and every other metacharacter is escaped. `*` therefore never
// crosses a directory separator unless the specifier spells one out.
func globToRegexp(glob string) string {
	var b strings.Builder
	b.WriteString("(?i)^")
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(glob[i:], ']')
			if end > 0 {
				b.WriteString(glob[i : i+end+1])
				i += end
			} else {
				b.WriteString(`\[`)
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// matches tests a candidate path against one compiled specifier.
func (cs compiledSpecifier) matches(candidate string) bool {
	if cs.re != nil {
		// Glob specifiers without a separator target the final path
		// segment (so *.env protects any .env file), while ones with a
		// separator match the whole path.
		if !strings.Contains(cs.spec.Expanded, "/") {
			return cs.re.MatchString(lastSegment(candidate))
		}
		return cs.re.MatchString(candidate)
	}
	return matchPrefix(candidate, cs.spec.Expanded)
}

// matchPrefix reports whether candidate equals the specifier or lives
// under it. The match requires a directory boundary: /protected covers
// /protected/x but not /protected-other/x. Callers pass post-resolution
// paths; raw ../ traversal is out of scope here.
func matchPrefix(candidate, specifier string) bool {
	specifier = strings.TrimSuffix(specifier, "/")
	if specifier == "" {
		return false
	}
	if candidate == specifier {
		return true
	}
	return strings.HasPrefix(candidate, specifier+"/")
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// MatchesAny reports whether the candidate path matches any compiled
// specifier. Comparison is case-insensitive for globs (by construction)
// and exact for literals.
func MatchesAny(candidate string, specs []compiledSpecifier) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	for _, cs := range specs {
		if cs.matches(candidate) {
			return true
		}
	}
	return false
}
