// Package document runs the documentation pipeline over C# source files:
// select files, parse them, apply strategies, and write the results back.
package document

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/xmldoc/docbuilder"
	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/strategy"
	"github.com/teranos/xmldoc/syntax"
	"github.com/teranos/xmldoc/syntax/csharp"
)

// Status is the outcome for one declaration.
type Status string

const (
	// StatusDocumented means the declaration's comment was added or rewritten.
	StatusDocumented Status = "documented"
	// StatusUnchanged means the existing comment already satisfies the policy.
	StatusUnchanged Status = "unchanged"
	// StatusUnsupported means no strategy handles the declaration's kind.
	StatusUnsupported Status = "unsupported"
)

// DeclarationResult describes what happened to one declaration.
type DeclarationResult struct {
	Name    string      `json:"name" yaml:"name"`
	Kind    syntax.Kind `json:"kind" yaml:"kind"`
	Line    int         `json:"line" yaml:"line"`
	Status  Status      `json:"status" yaml:"status"`
	Summary []string    `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// FileResult describes what happened to one file.
type FileResult struct {
	Path    string `json:"path" yaml:"path"`
	Changed bool   `json:"changed" yaml:"changed"`

	// Output is the documented source; equal to the input when nothing changed.
	Output []byte `json:"-" yaml:"-"`

	Declarations []DeclarationResult `json:"declarations,omitempty" yaml:"declarations,omitempty"`

	// SyntaxErrors is set when the file did not parse cleanly. Such files are
	// never rewritten.
	SyntaxErrors bool `json:"syntax_errors,omitempty" yaml:"syntax_errors,omitempty"`
}

// Documented counts declarations whose comment was added or rewritten.
func (r *FileResult) Documented() int {
	n := 0
	for _, d := range r.Declarations {
		if d.Status == StatusDocumented {
			n++
		}
	}
	return n
}

// Documenter documents one source file at a time. It owns a tree-sitter
// parser and is therefore not safe for concurrent use.
type Documenter struct {
	registry *strategy.Registry
	parser   *csharp.Parser
	logger   *zap.SugaredLogger
}

// NewDocumenter creates a Documenter. Close it when done.
func NewDocumenter(registry *strategy.Registry, log *zap.SugaredLogger, opts ...csharp.Option) *Documenter {
	if log == nil {
		log = logger.Named("document")
	}
	return &Documenter{
		registry: registry,
		parser:   csharp.NewParser(append([]csharp.Option{csharp.WithLogger(log.Named("csharp"))}, opts...)...),
		logger:   log,
	}
}

// Close releases the parser.
func (d *Documenter) Close() {
	d.parser.Close()
}

// DocumentSource documents every supported declaration in src. Edits are
// collected for the whole file and applied together, so either all of a
// file's declarations are documented or, on error, none are.
func (d *Documenter) DocumentSource(ctx context.Context, path string, src []byte) (*FileResult, error) {
	start := time.Now()
	log := logger.FromContext(logger.WithFile(ctx, path), d.logger)

	file, err := d.parser.Parse(ctx, path, src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	result := &FileResult{Path: path, Output: src}
	if file.HasErrors {
		result.SyntaxErrors = true
		log.Warnw("Skipping file with syntax errors")
		return result, nil
	}

	var edits []docbuilder.Edit
	for _, decl := range file.Declarations {
		dr := DeclarationResult{
			Name: decl.Identifier(),
			Kind: decl.Kind(),
			Line: decl.Line(),
		}

		doc, err := d.registry.Apply(decl)
		switch {
		case errors.IsUnsupportedKindError(err):
			dr.Status = StatusUnsupported
		case err != nil:
			return nil, errors.Wrapf(err, "%s:%d: %s", path, decl.Line(), decl.Identifier())
		case doc.Edit != nil:
			dr.Status = StatusDocumented
			dr.Summary = doc.Summary
			edits = append(edits, *doc.Edit)
		default:
			dr.Status = StatusUnchanged
			dr.Summary = doc.Summary
		}
		result.Declarations = append(result.Declarations, dr)
	}

	out, err := docbuilder.ApplyEdits(src, edits)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply edits to %s", path)
	}
	result.Output = out
	result.Changed = !bytes.Equal(out, src)

	log.Debugw("Documented file",
		logger.FieldCount, len(file.Declarations),
		"edits", len(edits),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return result, nil
}
