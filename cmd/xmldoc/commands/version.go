package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/xmldoc/display"
	"github.com/teranos/xmldoc/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show xmldoc version information",
		Long:        `Display version, build time, commit hash, and platform information for the xmldoc binary.`,
		Annotations: map[string]string{annotationConfig: "optional"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			w := cmd.OutOrStdout()

			if display.ShouldOutputJSON(cmd) {
				return display.WriteJSON(w, info)
			}
			fmt.Fprintln(w, info.String())
			fmt.Fprintf(w, "Platform: %s\n", info.Platform)
			fmt.Fprintf(w, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
}
