package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/redact"
)

// NewRedactCmd creates the redact command: scrub credentials from stdin.
func NewRedactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redact",
		Short: "Scrub credentials and internal addresses from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), redact.Scrub(string(data)))
			return nil
		},
	}
}

// NewIsolateCmd creates the isolate command: fence untrusted content.
func NewIsolateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "isolate",
		Short: "Wrap untrusted external content from stdin in labeled fences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), redact.Isolate(string(data), source))
			return nil
		},
	}
	cmd.Flags().String("source", "unknown", "Origin of the content (URL, tool name)")
	return cmd
}
