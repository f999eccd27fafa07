package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of paiguard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("paiguard %s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
