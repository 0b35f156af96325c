package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/xmldoc/diff"
	"github.com/teranos/xmldoc/display"
	"github.com/teranos/xmldoc/document"
	"github.com/teranos/xmldoc/logger"
)

// reportPrinter renders run reports for one command.
type reportPrinter struct {
	w         io.Writer
	json      bool
	verbosity int
}

func newReportPrinter(cmd *cobra.Command, verbosity int) *reportPrinter {
	return &reportPrinter{
		w:         cmd.OutOrStdout(),
		json:      display.ShouldOutputJSON(cmd),
		verbosity: verbosity,
	}
}

func (p *reportPrinter) show(category logger.OutputCategory) bool {
	return logger.ShouldOutput(p.verbosity, category)
}

func (p *reportPrinter) info(msg string) {
	if !p.json {
		pterm.Info.WithWriter(p.w).Println(msg)
	}
}

// report prints a full run: per-file changes, a results table and a status line.
func (p *reportPrinter) report(r *document.Report, dryRun bool) error {
	if p.json {
		return display.WriteJSON(p.w, r)
	}

	if err := p.changes(r, dryRun); err != nil {
		return err
	}

	if len(r.Files) > 0 && p.show(logger.OutputProgress) {
		data := pterm.TableData{{"File", "Status", "Documented", "Unchanged", "Unsupported"}}
		for _, f := range r.Files {
			if !f.Changed && !p.show(logger.OutputUnchanged) {
				continue
			}
			data = append(data, []string{
				relPath(f.Path),
				fileStatus(f, dryRun),
				strconv.Itoa(f.Documented()),
				strconv.Itoa(count(f, document.StatusUnchanged)),
				strconv.Itoa(count(f, document.StatusUnsupported)),
			})
		}
		if len(data) > 1 {
			if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(p.w).Render(); err != nil {
				return err
			}
		}
	}

	if p.show(logger.OutputTiming) {
		pterm.Fprintln(p.w, pterm.Gray(fmt.Sprintf("%d files in %s", len(r.Files), r.Duration.Round(time.Millisecond))))
	}

	switch {
	case r.Changed == 0:
		pterm.Success.WithWriter(p.w).Printfln("Nothing to document in %d files", len(r.Files))
	case dryRun:
		pterm.Warning.WithWriter(p.w).Printfln("Would document %d declarations in %d files", r.Documented, r.Changed)
	default:
		pterm.Success.WithWriter(p.w).Printfln("Documented %d declarations in %d files", r.Documented, r.Changed)
	}
	return nil
}

// changes prints each changed file (a diff in dry-run mode) and warns about
// files that were skipped for syntax errors.
func (p *reportPrinter) changes(r *document.Report, dryRun bool) error {
	if p.json {
		if len(r.ChangedFiles()) == 0 {
			return nil
		}
		return display.WriteJSON(p.w, r.ChangedFiles())
	}

	for _, f := range r.Files {
		if f.SyntaxErrors {
			pterm.Warning.WithWriter(p.w).Printfln("%s: skipped, the file has syntax errors", relPath(f.Path))
			continue
		}
		if !f.Changed {
			continue
		}

		rel := relPath(f.Path)
		if dryRun {
			original, err := os.ReadFile(f.Path)
			if err != nil {
				return err
			}
			pterm.Fprint(p.w, colorDiff(diff.Unified(filepath.ToSlash(rel), string(original), string(f.Output), diff.DefaultContext)))
		} else {
			pterm.Fprintln(p.w, pterm.LightGreen("✓ "), rel)
		}

		if p.show(logger.OutputSummaries) {
			for _, d := range f.Declarations {
				if d.Status != document.StatusDocumented {
					continue
				}
				pterm.Fprintln(p.w, pterm.Gray(fmt.Sprintf("    %s:%d %s", rel, d.Line, d.Name)))
				for _, line := range d.Summary {
					pterm.Fprintln(p.w, pterm.Gray("      "+line))
				}
			}
		}
	}
	return nil
}

func colorDiff(text string) string {
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = pterm.LightWhite(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = pterm.Cyan(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = pterm.Green(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = pterm.Red(line)
		}
	}
	return strings.Join(lines, "")
}

func fileStatus(f *document.FileResult, dryRun bool) string {
	switch {
	case f.SyntaxErrors:
		return "skipped"
	case f.Changed && dryRun:
		return "would update"
	case f.Changed:
		return "updated"
	default:
		return "unchanged"
	}
}

func count(f *document.FileResult, status document.Status) int {
	n := 0
	for _, d := range f.Declarations {
		if d.Status == status {
			n++
		}
	}
	return n
}

// relPath shortens path relative to the working directory when it lies below it.
func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
