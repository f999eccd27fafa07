// Package hook lets an eino-based agent loop enforce the guards at the
// tool boundary: every tool invocation passes through a guard function
// before it runs.
package hook

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/schema"
)

// Tool represents an executable tool.
// Eino tools implement ToolInfo + InvokableRun.
type Tool interface {
	Info(ctx context.Context) (*schema.ToolInfo, error)
	InvokableRun(ctx context.Context, args string, opts ...any) (string, error)
}

// GuardAction is the guard's instruction to the registry.
type GuardAction string

const (
	GuardAllow           GuardAction = "allow"
	GuardDeny            GuardAction = "deny"
	GuardRequireApproval GuardAction = "require_approval"
)

// GuardResult carries the guard's instruction and an operator-facing
// message.
type GuardResult struct {
	Action  GuardAction
	Message string
}

// GuardFunc inspects a tool invocation before it executes.
type GuardFunc func(ctx context.Context, name, argsJSON string) (GuardResult, error)

// Registry manages tools by name and runs the guard before execution.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	guard GuardFunc
}

// NewRegistry creates a new registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to registry
func (r *Registry) Register(tool Tool) error {
	info, err := tool.Info(context.Background())
	if err != nil {
		return err
	}
	if info == nil || info.Name == "" {
		return fmt.Errorf("tool info missing name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[info.Name]; exists {
		return fmt.Errorf("tool already registered: %s", info.Name)
	}
	r.tools[info.Name] = tool
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all tools
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	return result
}

// SetGuard installs the pre-execution guard.
func (r *Registry) SetGuard(guard GuardFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard = guard
}

// Execute runs a registered tool after consulting the guard. A deny
// aborts with the guard's message; a pending approval returns without
// running the tool.
func (r *Registry) Execute(ctx context.Context, name, argsJSON string) (string, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	guard := r.guard
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}

	if guard != nil {
		result, err := guard(ctx, name, argsJSON)
		if err != nil {
			return "", fmt.Errorf("guard failed for tool %s: %w", name, err)
		}
		switch result.Action {
		case GuardDeny:
			msg := result.Message
			if msg == "" {
				msg = "blocked by policy"
			}
			return "", fmt.Errorf("tool %s denied: %s", name, msg)
		case GuardRequireApproval:
			return fmt.Sprintf("pending approval: %s", result.Message), nil
		}
	}

	return tool.InvokableRun(ctx, argsJSON)
}
