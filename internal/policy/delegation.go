package policy

import "strings"

// EvaluateDelegation scans a natural-language task prompt, destined for a
// delegated sub-agent, against the configured injection signatures. The
// scan is case-insensitive and first match wins. Ordinary task language
// must pass: patterns target literal attack idioms, and specificity is
// the rule author's responsibility.
func (rs *Ruleset) EvaluateDelegation(prompt string) Verdict {
	if strings.TrimSpace(prompt) == "" {
		return Allow()
	}
	for _, rule := range rs.injection {
		if rule.re.MatchString(prompt) {
			return Block(rule.reason)
		}
	}
	return Allow()
}
