package commands

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/document"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/strategy"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		dryRun  bool
		watch   bool
		changed bool
	)

	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Add summary comments to C# files in place",
		Long: `Document every class declaration in the selected C# files.

Paths may be files or directories and default to the current directory.
Directories are walked with the files.include and files.exclude globs;
files named explicitly are only subject to files.exclude.

Existing summaries are left alone unless builder.existing = "merge".

Examples:
  xmldoc apply                     # Document everything below .
  xmldoc apply src/Orders.cs       # Document one file
  xmldoc apply --dry-run           # Print a diff instead of writing
  xmldoc apply --changed           # Only files changed in the git work tree
  xmldoc apply --watch src/        # Document files as they are saved`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.validConfig()
			if err != nil {
				return err
			}
			paths := pathsOrDefault(args)
			opts := document.Options{DryRun: dryRun}

			runner, err := newRunner(cfg)
			if err != nil {
				return err
			}
			files, err := selectFiles(cfg, paths, changed)
			if err != nil {
				return err
			}

			report, err := runner.Run(cmd.Context(), files, opts)
			if err != nil {
				return err
			}
			out := newReportPrinter(cmd, a.verbosity)
			if err := out.report(report, dryRun); err != nil {
				return err
			}

			if !watch {
				return nil
			}
			return a.watch(cmd, cfg, paths, runner, opts, out)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would change without writing files")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and document files as they change")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only document files changed in the git work tree")

	return cmd
}

func pathsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func newRunner(cfg *config.Config) (*document.Runner, error) {
	registry, err := strategy.NewDefaultRegistry(cfg, nil)
	if err != nil {
		return nil, err
	}
	return document.NewRunner(registry, cfg.EffectiveWorkers(), nil), nil
}

// selectFiles walks paths, narrowed to the git work tree's changes when
// changed or files.changed_only is set.
func selectFiles(cfg *config.Config, paths []string, changed bool) ([]string, error) {
	selector, err := document.NewSelector(cfg.Files)
	if err != nil {
		return nil, err
	}
	files, err := selector.Walk(paths)
	if err != nil {
		return nil, err
	}
	if !changed && !cfg.Files.ChangedOnly {
		return files, nil
	}

	var modified []string
	seen := make(map[string]bool)
	for _, p := range paths {
		root := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			root = filepath.Dir(p)
		}
		list, err := document.ChangedFiles(root)
		if err != nil {
			return nil, err
		}
		for _, f := range list {
			if !seen[f] {
				seen[f] = true
				modified = append(modified, f)
			}
		}
	}
	return document.FilterChanged(files, modified), nil
}

// watchRoots turns paths into directories to watch.
func watchRoots(paths []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			p = filepath.Dir(p)
		}
		if !seen[p] {
			seen[p] = true
			roots = append(roots, p)
		}
	}
	return roots
}

// watchState holds what a config reload replaces while watching.
type watchState struct {
	runner   atomic.Pointer[document.Runner]
	selector *document.SwappableSelector
}

func newWatchState(cfg *config.Config, runner *document.Runner) (*watchState, error) {
	selector, err := document.NewSelector(cfg.Files)
	if err != nil {
		return nil, err
	}
	s := &watchState{selector: document.NewSwappableSelector(selector)}
	s.runner.Store(runner)
	return s, nil
}

// apply swaps in the runner and selector for cfg. Nothing changes unless both
// can be built.
func (s *watchState) apply(cfg *config.Config) error {
	runner, err := newRunner(cfg)
	if err != nil {
		return err
	}
	selector, err := document.NewSelector(cfg.Files)
	if err != nil {
		return err
	}
	s.runner.Store(runner)
	s.selector.Store(selector)
	return nil
}

// watch documents files under paths as they change until the command's
// context is cancelled. Edits to the active config file rebuild the runner
// and the file selection.
func (a *app) watch(cmd *cobra.Command, cfg *config.Config, paths []string, runner *document.Runner, opts document.Options, out *reportPrinter) error {
	ctx := cmd.Context()

	state, err := newWatchState(cfg, runner)
	if err != nil {
		return err
	}

	out.info("Watching for changes (Ctrl+C to stop)")

	// serialises output from handlers and reloads
	var mu sync.Mutex

	if path := a.activeConfigFile(); path != "" {
		cw, err := config.NewWatcher(path, a.reload)
		if err != nil {
			return err
		}
		cw.OnReload(func(cfg *config.Config) error {
			if err := state.apply(cfg); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			out.info("Reloaded configuration from " + relPath(path))
			return nil
		})
		cw.Start()
		defer cw.Stop()
	}

	handler := func(ctx context.Context, path string) error {
		report, err := state.runner.Load().Run(ctx, []string{path}, opts)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		return out.changes(report, opts.DryRun)
	}

	logger.Debugw("Watch started", logger.FieldRoot, paths)
	return document.Watch(ctx, watchRoots(paths), document.WatchOptions{Selector: state.selector}, handler)
}

// activeConfigFile returns the highest-precedence config file in use, or "".
func (a *app) activeConfigFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	files := config.Files()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1]
}

func (a *app) reload() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFromFile(a.configPath)
	}
	config.Reset()
	return config.Load()
}
