// Package display renders command output as JSON, YAML, TOML or styled text.
package display

import (
	"os"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON reports whether cmd should print JSON instead of styled text.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return os.Getenv("XMLDOC_OUTPUT") == "json"
	}

	// a local --json wins over the global one
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}
	if v, _ := cmd.Root().PersistentFlags().GetBool("json"); v {
		return true
	}
	return os.Getenv("XMLDOC_OUTPUT") == "json"
}
