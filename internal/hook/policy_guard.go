package hook

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/guard"
	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/policy"
)

// Well-known tool shapes across agent runtimes. Field lookup is
// normalized (lowercase, no underscores/hyphens) so "file_path",
// "FilePath", and "filepath" all resolve.
var (
	commandFields = []string{"command", "cmd", "script", "shellcommand"}
	pathFields    = []string{"path", "filepath", "filename", "file", "target", "targetfile"}
	contentFields = []string{"content", "newstring", "text"}
	promptFields  = []string{"task", "prompt", "instruction"}
)

var (
	shellTools  = map[string]bool{"exec": true, "bash": true, "shell": true, "run_command": true}
	writeTools  = map[string]bool{"write_file": true, "create_file": true}
	editTools   = map[string]bool{"edit_file": true, "apply_patch": true}
	deleteTools = map[string]bool{"delete_file": true, "remove_file": true}
	spawnTools  = map[string]bool{"spawn": true, "subagent": true, "delegate": true, "task": true}
)

// PolicyGuard adapts a guard.Service into a registry GuardFunc. Tool
// invocations with a recognized shape are mapped onto action requests;
// unrecognized tools are allowed, matching the fail-open contract for
// unconfigured categories.
func PolicyGuard(svc *guard.Service) GuardFunc {
	return func(ctx context.Context, name, argsJSON string) (GuardResult, error) {
		req, ok := mapToolCall(name, argsJSON)
		if !ok {
			return GuardResult{Action: GuardAllow}, nil
		}

		verdict, err := svc.Evaluate(req)
		if err != nil {
			return GuardResult{}, err
		}
		switch verdict.Action() {
		case policy.ActionBlock:
			return GuardResult{Action: GuardDeny, Message: verdict.Reason}, nil
		case policy.ActionAsk:
			return GuardResult{Action: GuardRequireApproval, Message: verdict.Reason}, nil
		default:
			return GuardResult{Action: GuardAllow}, nil
		}
	}
}

func mapToolCall(name, argsJSON string) (guard.Request, bool) {
	args := decodeArgs(argsJSON)
	toolName := strings.ToLower(strings.TrimSpace(name))

	switch {
	case shellTools[toolName]:
		command := firstString(args, commandFields)
		if command == "" {
			return guard.Request{}, false
		}
		return guard.Request{Action: guard.ActionShellCommand, Command: command}, true
	case writeTools[toolName]:
		path := firstString(args, pathFields)
		if path == "" {
			return guard.Request{}, false
		}
		content := firstString(args, contentFields)
		return guard.Request{Action: guard.ActionFileWrite, Path: path, Content: &content}, true
	case editTools[toolName]:
		path := firstString(args, pathFields)
		if path == "" {
			return guard.Request{}, false
		}
		return guard.Request{Action: guard.ActionFileEdit, Path: path}, true
	case deleteTools[toolName]:
		path := firstString(args, pathFields)
		if path == "" {
			return guard.Request{}, false
		}
		return guard.Request{Action: guard.ActionFileDelete, Path: path}, true
	case spawnTools[toolName]:
		prompt := firstString(args, promptFields)
		return guard.Request{Action: guard.ActionDelegation, Prompt: prompt}, true
	}
	return guard.Request{}, false
}

func decodeArgs(argsJSON string) map[string]any {
	args := make(map[string]any)
	if strings.TrimSpace(argsJSON) == "" {
		return args
	}
	_ = json.Unmarshal([]byte(argsJSON), &args)
	return args
}

func firstString(args map[string]any, fields []string) string {
	normalized := make(map[string]any, len(args))
	for key, value := range args {
		normalized[normalizeFieldName(key)] = value
	}
	for _, field := range fields {
		if value, ok := normalized[field]; ok {
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func normalizeFieldName(name string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(name))
}
