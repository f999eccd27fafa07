package policy

import "strings"

// EvaluateFileMutation decides whether a direct file mutation (from the
// agent's write/edit/delete tools) may proceed. The target is a single
// already-resolved path, so no extraction pass is needed. A nil content
// skips the content rules; only writes carry content.
func (rs *Ruleset) EvaluateFileMutation(target string, content *string, op FileOp) Verdict {
	target = strings.TrimSpace(target)
	if target == "" {
		// No resolvable target: fail open rather than error.
		return Allow()
	}
	path := rs.expandCandidate(target)

	if MatchesAny(path, rs.zeroAccess) {
		return Block(pathViolation(CategoryZeroAccess, path))
	}
	if MatchesAny(path, rs.readOnly) {
		return Block(pathViolation(CategoryReadOnly, path))
	}
	if op == FileOpDelete && MatchesAny(path, rs.noDelete) {
		return Block(pathViolation(CategoryNoDelete, path))
	}

	if content != nil {
		for _, rule := range rs.content {
			if !rule.file.MatchString(path) {
				continue
			}
			if rule.content.MatchString(*content) {
				return Block(rule.reason)
			}
		}
	}
	return Allow()
}
