// Package guard is the host-facing enforcement boundary: it decodes
// action payloads, dispatches them to the pure policy guards, and records
// every decision.
package guard

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/audit"
	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/policy"
)

// ErrMalformedRequest marks payloads that cannot be decoded into a valid
// action variant. It is distinct from any verdict: the host decides
// whether evaluation failure fails open or closed.
var ErrMalformedRequest = errors.New("malformed action request")

// Service evaluates action requests against a compiled ruleset. The
// ruleset sits behind an atomic pointer so hosts can hot-reload policy
// without re-parsing per call and without locking the decision path.
type Service struct {
	rules   atomic.Pointer[policy.Ruleset]
	auditor *audit.Writer
	now     func() time.Time
}

// NewService creates a guard service. auditor may be nil to disable the
// decision log.
func NewService(rules *policy.Ruleset, auditor *audit.Writer) *Service {
	s := &Service{auditor: auditor, now: time.Now}
	s.rules.Store(rules)
	return s
}

// Reload swaps in a freshly compiled ruleset. In-flight evaluations keep
// the ruleset they started with.
func (s *Service) Reload(rules *policy.Ruleset) {
	s.rules.Store(rules)
}

// Evaluate dispatches one action request to its guard and returns the
// verdict. Each call is an independent decision: nothing is cached and no
// state survives between calls.
func (s *Service) Evaluate(req Request) (policy.Verdict, error) {
	if err := req.validate(); err != nil {
		return policy.Verdict{}, err
	}
	rules := s.rules.Load()
	if rules == nil {
		return policy.Verdict{}, fmt.Errorf("guard service has no ruleset")
	}

	var verdict policy.Verdict
	var target string
	switch req.Action {
	case ActionShellCommand:
		verdict = rules.EvaluateCommand(req.Command)
		target = req.Command
	case ActionFileWrite:
		verdict = rules.EvaluateFileMutation(req.Path, req.Content, policy.FileOpWrite)
		target = req.Path
	case ActionFileEdit:
		verdict = rules.EvaluateFileMutation(req.Path, nil, policy.FileOpEdit)
		target = req.Path
	case ActionFileDelete:
		verdict = rules.EvaluateFileMutation(req.Path, nil, policy.FileOpDelete)
		target = req.Path
	case ActionDelegation:
		verdict = rules.EvaluateDelegation(req.Prompt)
		target = req.Prompt
	}

	s.appendAuditEvent(req, verdict, target)
	return verdict, nil
}

// EvaluateJSON decodes a raw payload and evaluates it.
func (s *Service) EvaluateJSON(data []byte) (policy.Verdict, error) {
	req, err := Decode(data)
	if err != nil {
		return policy.Verdict{}, err
	}
	return s.Evaluate(req)
}

func (s *Service) appendAuditEvent(req Request, verdict policy.Verdict, target string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Time:      s.now().UTC(),
		Guard:     req.Action,
		Action:    verdict.Action().String(),
		Target:    target,
		Reason:    verdict.Reason,
		RequestID: req.RequestID,
	}
	if err := s.auditor.Append(event); err != nil {
		slog.Warn("failed to append audit event", "guard", event.Guard, "action", event.Action, "error", err)
	}
}
