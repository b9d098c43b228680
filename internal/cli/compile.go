package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vortex/docx-api/internal/compiler"
)

var (
	compileOutput     string
	compileSpecName   string
	compileInputForm  string
	compileIncludeTOC bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <input-file>",
	Short: "Compile a Markdown or plain-text file into a .docx",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "out.docx", "output .docx path")
	compileCmd.Flags().StringVar(&compileSpecName, "spec", "Generic_CN", "built-in spec name")
	compileCmd.Flags().StringVar(&compileInputForm, "format", "", "input format: markdown, plaintext, or empty to auto-detect")
	compileCmd.Flags().BoolVar(&compileIncludeTOC, "toc", true, "insert a table of contents")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	sourceText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := compiler.Options{
		InputFormat: compileInputForm,
		SpecName:    compileSpecName,
		IncludeTOC:  compileIncludeTOC,
	}

	var lastPhase compiler.Phase
	result := compiler.CompileDocument(sourceText, opts, 0, func(p compiler.Progress) {
		if p.Phase != lastPhase {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", p.Phase, p.Message)
			lastPhase = p.Phase
		}
	})
	if !result.Success {
		return fmt.Errorf("compile failed: %s", result.Error)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
	}

	if err := os.WriteFile(compileOutput, result.OutputDocx, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", compileOutput, len(result.OutputDocx))
	return nil
}
