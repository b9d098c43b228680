package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vortex/docx-api/internal/specprovider"
)

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "List built-in StyleSpec names",
	RunE:  runSpecs,
}

func init() {
	rootCmd.AddCommand(specsCmd)
}

func runSpecs(cmd *cobra.Command, args []string) error {
	builtins := specprovider.BuiltinSpecs()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
