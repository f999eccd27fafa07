package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/audit"
	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/guard"
	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/policy"
)

// NewCheckCmd creates the check command group. Each subcommand evaluates
// one action and exits with the verdict code: 0 allow, 2 block, 3 ask,
// 1 evaluation error.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate an agent action against the policy",
	}

	cmd.AddCommand(
		newCheckCommandCmd(),
		newCheckWriteCmd(),
		newCheckEditCmd(),
		newCheckDeleteCmd(),
		newCheckDelegationCmd(),
		newCheckPayloadCmd(),
	)

	return cmd
}

func newCheckCommandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "command <shell command>",
		Short: "Check a shell command before execution",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(guard.Request{
				Action:  guard.ActionShellCommand,
				Command: strings.Join(args, " "),
			})
		},
	}
}

func newCheckWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Check a file write, reading the proposed content from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read content from stdin: %w", err)
			}
			content := string(data)
			return runCheck(guard.Request{
				Action:  guard.ActionFileWrite,
				Path:    args[0],
				Content: &content,
			})
		},
	}
	return cmd
}

func newCheckEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <path>",
		Short: "Check a file edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(guard.Request{Action: guard.ActionFileEdit, Path: args[0]})
		},
	}
}

func newCheckDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Check a file deletion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(guard.Request{Action: guard.ActionFileDelete, Path: args[0]})
		},
	}
}

func newCheckDelegationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delegation <prompt>",
		Short: "Check a task prompt before handing it to a sub-agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(guard.Request{
				Action: guard.ActionDelegation,
				Prompt: strings.Join(args, " "),
			})
		},
	}
}

func newCheckPayloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payload",
		Short: "Check a JSON action payload read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read payload from stdin: %w", err)
			}
			req, err := guard.Decode(data)
			if err != nil {
				return err
			}
			return runCheck(req)
		},
	}
}

func runCheck(req guard.Request) error {
	svc, err := newGuardService()
	if err != nil {
		return err
	}

	verdict, err := svc.Evaluate(req)
	if err != nil {
		return err
	}
	return verdictExit(verdict)
}

func newGuardService() (*guard.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	rules, err := policy.NewRuleset(cfg.Policy.RulesetConfig())
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}

	var auditor *audit.Writer
	if cfg.Audit.Enabled {
		auditor = audit.NewWriter(cfg.AuditDir())
	}
	return guard.NewService(rules, auditor), nil
}

func verdictExit(verdict policy.Verdict) error {
	switch verdict.Action() {
	case policy.ActionBlock:
		return &exitError{code: ExitBlock, message: renderVerdict(verdict)}
	case policy.ActionAsk:
		return &exitError{code: ExitAsk, message: renderVerdict(verdict)}
	default:
		return nil
	}
}
