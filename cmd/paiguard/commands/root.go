package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/config"
)

var (
	logLevelOverride string
	configPathFlag   string
)

// Exit codes form the host signaling contract: the check commands map
// verdicts onto them so a hook script can branch on $?.
const (
	ExitAllow = 0 // no opinion, proceed
	ExitError = 1 // evaluation error, host decides fail-open/closed
	ExitBlock = 2 // deny
	ExitAsk   = 3 // require human confirmation
)

// exitError carries a non-zero exit code out of a RunE without cobra
// treating the verdict itself as a usage failure.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string { return e.message }

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "paiguard",
		Short:         "Paiguard - policy boundary for agent actions",
		Long:          `Paiguard decides, before any side effect occurs, whether an agent action is allowed, needs confirmation, or is blocked.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return configureLogger(cfg, logLevelOverride)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to policy configuration file")

	cmd.AddCommand(
		NewCheckCmd(),
		NewPolicyCmd(),
		NewRedactCmd(),
		NewIsolateCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Run executes the CLI and returns the process exit code.
func Run() int {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err == nil {
		return ExitAllow
	}

	var exit *exitError
	if errors.As(err, &exit) {
		if exit.message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), exit.message)
		}
		return exit.code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitError
}

func loadConfig() (*config.Config, error) {
	if configPathFlag != "" {
		return config.LoadFrom(configPathFlag)
	}
	return config.Load()
}
