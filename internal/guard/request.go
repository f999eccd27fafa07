package guard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action payload kinds understood by the boundary.
const (
	ActionShellCommand = "shell_command"
	ActionFileWrite    = "file_write"
	ActionFileEdit     = "file_edit"
	ActionFileDelete   = "file_delete"
	ActionDelegation   = "delegation"
)

// Request is the tagged union of agent actions submitted for a decision.
// Only the fields relevant to the named action are consulted.
type Request struct {
	Action  string  `json:"action"`
	Command string  `json:"command,omitempty"`
	Path    string  `json:"path,omitempty"`
	Content *string `json:"content,omitempty"`
	Prompt  string  `json:"prompt,omitempty"`

	// RequestID correlates audit events with the host's invocation.
	RequestID string `json:"request_id,omitempty"`
}

// Decode parses and validates a JSON action payload. A payload that does
// not decode into a well-formed variant is a malformed request: the error
// wraps ErrMalformedRequest and no verdict is produced, so the host owns
// the fail-open/fail-closed call.
func Decode(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if err := req.validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r Request) validate() error {
	switch r.Action {
	case ActionShellCommand:
		if strings.TrimSpace(r.Command) == "" {
			return fmt.Errorf("%w: %s requires command", ErrMalformedRequest, r.Action)
		}
	case ActionFileWrite:
		if strings.TrimSpace(r.Path) == "" {
			return fmt.Errorf("%w: %s requires path", ErrMalformedRequest, r.Action)
		}
		if r.Content == nil {
			return fmt.Errorf("%w: %s requires content", ErrMalformedRequest, r.Action)
		}
	case ActionFileEdit, ActionFileDelete:
		if strings.TrimSpace(r.Path) == "" {
			return fmt.Errorf("%w: %s requires path", ErrMalformedRequest, r.Action)
		}
	case ActionDelegation:
		// An empty prompt is well-formed and always allowed.
	case "":
		return fmt.Errorf("%w: missing action", ErrMalformedRequest)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrMalformedRequest, r.Action)
	}
	return nil
}
