package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/xmldoc/display"
	"github.com/teranos/xmldoc/document"
	"github.com/teranos/xmldoc/errors"
)

func newCheckCmd(a *app) *cobra.Command {
	var changed bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Fail when C# files lack generated documentation",
		Long: `Report class declarations that apply would document, without writing.

Exits with status 1 when any file would change, so it can gate CI:

  xmldoc check --changed || exit 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.validConfig()
			if err != nil {
				return err
			}
			runner, err := newRunner(cfg)
			if err != nil {
				return err
			}
			files, err := selectFiles(cfg, pathsOrDefault(args), changed)
			if err != nil {
				return err
			}

			report, err := runner.Run(cmd.Context(), files, document.Options{DryRun: true})
			if err != nil {
				return err
			}

			out := newReportPrinter(cmd, a.verbosity)
			if out.json {
				if err := display.WriteJSON(out.w, report); err != nil {
					return err
				}
			} else {
				for _, f := range report.ChangedFiles() {
					for _, d := range f.Declarations {
						if d.Status == document.StatusDocumented {
							pterm.Fprintln(out.w, pterm.Yellow("✗ "), fmt.Sprintf("%s:%d", relPath(f.Path), d.Line), d.Name)
						}
					}
				}
			}

			if report.Changed == 0 {
				if !out.json {
					pterm.Success.WithWriter(out.w).Printfln("All %d files are documented", len(report.Files))
				}
				return nil
			}
			err = errors.WithHint(
				errors.Newf("%d declarations in %d files lack documentation", report.Documented, report.Changed),
				"run xmldoc apply to add them")
			return &ExitError{Code: 1, Err: err}
		},
	}

	cmd.Flags().BoolVar(&changed, "changed", false, "Only check files changed in the git work tree")

	return cmd
}
