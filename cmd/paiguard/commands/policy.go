package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/policy"
)

func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect and validate the loaded policy",
	}

	cmd.AddCommand(
		newPolicyShowCmd(),
		newPolicyValidateCmd(),
	)

	return cmd
}

func newPolicyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the loaded rule tables",
		RunE:  runPolicyShow,
	}
}

func newPolicyValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Compile the configured policy and report authoring errors",
		RunE:  runPolicyValidate,
	}
}

func runPolicyShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := cfg.Policy

	commandRows := make([][2]string, 0, len(p.DangerousCommands))
	for _, r := range p.DangerousCommands {
		label := r.Reason
		if r.Ask {
			label += " (ask)"
		}
		commandRows = append(commandRows, [2]string{r.Pattern, label})
	}
	contentRows := make([][2]string, 0, len(p.WriteContentRules))
	for _, r := range p.WriteContentRules {
		contentRows = append(contentRows, [2]string{r.FilePattern + " :: " + r.ContentPattern, r.Reason})
	}
	injectionRows := make([][2]string, 0, len(p.PromptInjection))
	for _, r := range p.PromptInjection {
		injectionRows = append(injectionRows, [2]string{r.Pattern, r.Reason})
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderRuleTable("Dangerous commands", commandRows))
	fmt.Fprint(out, renderRuleTable("Zero-access paths", pathRows(p.ZeroAccessPaths)))
	fmt.Fprint(out, renderRuleTable("Read-only paths", pathRows(p.ReadOnlyPaths)))
	fmt.Fprint(out, renderRuleTable("No-delete paths", pathRows(p.NoDeletePaths)))
	fmt.Fprint(out, renderRuleTable("Write content rules", contentRows))
	fmt.Fprint(out, renderRuleTable("Prompt injection", injectionRows))
	return nil
}

func pathRows(paths []string) [][2]string {
	rows := make([][2]string, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, [2]string{p, ""})
	}
	return rows
}

func runPolicyValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := policy.NewRuleset(cfg.Policy.RulesetConfig()); err != nil {
		return fmt.Errorf("policy is invalid:\n%w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Policy is valid.")
	return nil
}
