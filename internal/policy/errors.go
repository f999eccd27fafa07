package policy

import "fmt"

// SpecifierError reports one path specifier whose glob failed to compile.
type SpecifierError struct {
	Specifier string
	Err       error
}

func (e *SpecifierError) Error() string {
	return fmt.Sprintf("path specifier %q: %v", e.Specifier, e.Err)
}

func (e *SpecifierError) Unwrap() error { return e.Err }

// RuleError reports one configured regex rule that failed to compile.
// Compile failures are a configuration authoring bug and fail the whole
// load: a broken rule must neither vanish nor become the blocker itself.
type RuleError struct {
	Table   string
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s rule %q: %v", e.Table, e.Pattern, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
