// Package cli implements thesisfmt, a local non-networked entry point for
// driving the compiler (C9) directly — development and CI smoke-testing
// without standing up the job-control HTTP surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "thesisfmt",
	Short:   "Compile Markdown or plain text into a styled .docx",
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
