package document

import (
	"context"
	"os"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/strategy"
)

// Options control a Run.
type Options struct {
	// DryRun computes results without writing any file.
	DryRun bool
}

// Report summarises a Run.
type Report struct {
	// Files holds one result per input file, sorted by path.
	Files []*FileResult `json:"files" yaml:"files"`

	Changed     int `json:"changed" yaml:"changed"`
	Documented  int `json:"documented" yaml:"documented"`
	Unchanged   int `json:"unchanged" yaml:"unchanged"`
	Unsupported int `json:"unsupported" yaml:"unsupported"`

	// Skipped counts files left alone because of syntax errors.
	Skipped int `json:"skipped" yaml:"skipped"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// ChangedFiles returns the results for files that were (or would be) rewritten.
func (r *Report) ChangedFiles() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f)
		}
	}
	return out
}

// Runner documents many files concurrently.
type Runner struct {
	registry *strategy.Registry
	workers  int
	logger   *zap.SugaredLogger
}

// NewRunner creates a Runner with at most workers files in flight;
// workers <= 0 means one per CPU.
func NewRunner(registry *strategy.Registry, workers int, log *zap.SugaredLogger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.Named("document")
	}
	return &Runner{registry: registry, workers: workers, logger: log}
}

// Run documents files. The first error cancels the remaining work. Each
// worker owns a Documenter, and with it a parser, for the whole run.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) (*Report, error) {
	start := time.Now()
	report := &Report{}
	if len(files) == 0 {
		return report, nil
	}

	workers := min(r.workers, len(files))
	pool := make(chan *Documenter, workers)
	for i := 0; i < workers; i++ {
		pool <- NewDocumenter(r.registry, r.logger)
	}
	defer func() {
		close(pool)
		for d := range pool {
			d.Close()
		}
	}()

	// indices are unique per goroutine, no lock needed
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := <-pool
			defer func() { pool <- d }()

			res, err := r.documentFile(gctx, d, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	report.Files = results
	for _, res := range results {
		if res.Changed {
			report.Changed++
		}
		if res.SyntaxErrors {
			report.Skipped++
		}
		for _, d := range res.Declarations {
			switch d.Status {
			case StatusDocumented:
				report.Documented++
			case StatusUnchanged:
				report.Unchanged++
			case StatusUnsupported:
				report.Unsupported++
			}
		}
	}
	report.Duration = time.Since(start)

	r.logger.Infow("Run complete",
		logger.FieldCount, len(files),
		"changed", report.Changed,
		"documented", report.Documented,
		"skipped", report.Skipped,
		"dry_run", opts.DryRun,
		logger.FieldDurationMS, report.Duration.Milliseconds())

	return report, nil
}

func (r *Runner) documentFile(ctx context.Context, d *Documenter, path string, opts Options) (*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapNotFound(err, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	res, err := d.DocumentSource(ctx, path, src)
	if err != nil {
		return nil, err
	}
	if res.Changed && !opts.DryRun {
		if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", path)
		}
		r.logger.Debugw("Wrote file",
			logger.FieldFile, path,
			"documented", res.Documented())
	}
	return res, nil
}
