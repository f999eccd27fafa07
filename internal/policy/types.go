package policy

// Action is the terminal state of a guard decision.
type Action string

const (
	ActionAllow Action = "allow"
	ActionAsk   Action = "ask"
	ActionBlock Action = "block"
)

// String returns the string representation of an Action.
func (a Action) String() string {
	return string(a)
}

// Verdict is the tri-state outcome of a guard evaluation. Blocked and Ask
// are never both set: BLOCK outranks ASK, ASK outranks ALLOW.
type Verdict struct {
	Blocked bool
	Ask     bool
	Reason  string
}

// Action resolves the verdict to its terminal state.
func (v Verdict) Action() Action {
	switch {
	case v.Blocked:
		return ActionBlock
	case v.Ask:
		return ActionAsk
	default:
		return ActionAllow
	}
}

// Allow returns the neutral verdict.
func Allow() Verdict {
	return Verdict{}
}

// Block returns a blocking verdict with the given reason.
func Block(reason string) Verdict {
	return Verdict{Blocked: true, Reason: reason}
}

// Ask returns a confirmation-required verdict with the given reason.
func Ask(reason string) Verdict {
	return Verdict{Ask: true, Reason: reason}
}

// FileOp distinguishes file-mutation styles for protection-list selection.
type FileOp string

const (
	FileOpWrite  FileOp = "write"
	FileOpEdit   FileOp = "edit"
	FileOpDelete FileOp = "delete"
)

// PathCategory names the protection list that produced a violation.
type PathCategory string

const (
	CategoryZeroAccess PathCategory = "zero-access"
	CategoryReadOnly   PathCategory = "read-only"
	CategoryNoDelete   PathCategory = "no-delete"
)
