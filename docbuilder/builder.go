// Package docbuilder attaches summary lines to declarations as /// XML
// documentation comments.
//
// The builder never touches source directly. It describes the change as an
// Edit on the original bytes; callers collect the edits for a file and apply
// them together with ApplyEdits once every summary has been computed.
package docbuilder

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/syntax"
)

// Policy decides what happens to an existing documentation comment.
type Policy string

const (
	// PolicyKeep leaves an existing <summary> alone. Comments without one get
	// the generated summary prepended.
	PolicyKeep Policy = "keep"

	// PolicyMerge replaces the existing <summary> block and keeps every other tag.
	PolicyMerge Policy = "merge"
)

// ParsePolicy parses a policy name; "" means PolicyKeep.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyKeep, "":
		return PolicyKeep, nil
	case PolicyMerge:
		return PolicyMerge, nil
	}
	return "", errors.WithHint(
		errors.Newf("unknown policy %q", s),
		`use "keep" or "merge"`)
}

// Documented is a declaration with its documentation attached.
type Documented struct {
	Decl    syntax.Declaration
	Summary []string

	// Comment is the resulting comment, one entry per line with its "///"
	// prefix and without indentation.
	Comment []string

	// Edit attaches Comment to the source. nil when the file already says
	// exactly this, or when policy keeps an existing summary.
	Edit *Edit
}

// Builder renders summaries into documentation comments. It holds no
// per-call state and is safe for concurrent use.
type Builder struct {
	policy Policy
	logger *zap.SugaredLogger
}

// New creates a Builder. A nil logger falls back to the package logger.
func New(policy Policy, log *zap.SugaredLogger) *Builder {
	if policy == "" {
		policy = PolicyKeep
	}
	if log == nil {
		log = logger.Named("docbuilder")
	}
	return &Builder{policy: policy, logger: log}
}

// Policy returns the builder's merge policy.
func (b *Builder) Policy() Policy {
	return b.policy
}

// Build merges summary into decl's documentation.
func (b *Builder) Build(decl syntax.Declaration, summary []string) (*Documented, error) {
	if decl == nil {
		return nil, errors.Mark(errors.New("nil declaration"), errors.ErrInvalidRequest)
	}
	if len(summary) == 0 {
		return nil, errors.Mark(
			errors.Newf("empty summary for %s", decl.Identifier()),
			errors.ErrInvalidRequest)
	}

	doc := &Documented{
		Decl:    decl,
		Summary: append([]string(nil), summary...),
	}
	block := summaryBlock(summary)
	existing := decl.DocComment()

	if existing == nil {
		doc.Comment = prefixed(block)
		doc.Edit = insertEdit(decl, block)
		return doc, nil
	}

	var lines []string
	switch {
	case !existing.HasTag("summary"):
		lines = append(block, existing.Lines...)
	case b.policy == PolicyKeep:
		doc.Comment = prefixed(existing.Lines)
		return doc, nil
	default:
		merged, ok := replaceSummary(existing.Lines, block)
		if !ok {
			b.logger.Warnw("Existing summary has no closing tag, leaving comment unchanged",
				logger.FieldDeclaration, decl.Identifier(),
				logger.FieldLine, decl.Line())
			doc.Comment = prefixed(existing.Lines)
			return doc, nil
		}
		lines = merged
	}

	doc.Comment = prefixed(lines)
	if slices.Equal(lines, existing.Lines) {
		return doc, nil
	}
	doc.Edit = &Edit{
		Start: existing.Start,
		End:   existing.End,
		Text:  render(lines, decl.Indent(), decl.Newline()),
	}
	return doc, nil
}

func summaryBlock(summary []string) []string {
	block := make([]string, 0, len(summary)+2)
	block = append(block, "<summary>")
	block = append(block, summary...)
	return append(block, "</summary>")
}

// replaceSummary swaps the first <summary>…</summary> span for block. Text
// sharing a line with the tags stays on its own line.
func replaceSummary(lines, block []string) ([]string, bool) {
	first, last := -1, -1
	for i, line := range lines {
		if first < 0 {
			if strings.Contains(line, "<summary") {
				first = i
			} else {
				continue
			}
		}
		if strings.Contains(line, "</summary>") {
			last = i
			break
		}
	}
	if first < 0 || last < 0 {
		return nil, false
	}

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:first]...)
	if before := strings.TrimSpace(lines[first][:strings.Index(lines[first], "<summary")]); before != "" {
		out = append(out, before)
	}
	out = append(out, block...)
	closing := lines[last]
	if after := strings.TrimSpace(closing[strings.Index(closing, "</summary>")+len("</summary>"):]); after != "" {
		out = append(out, after)
	}
	return append(out, lines[last+1:]...), true
}

// insertEdit places a new comment above decl. A declaration that shares its
// first line with other code gets the comment on lines of its own.
func insertEdit(decl syntax.Declaration, lines []string) *Edit {
	start, _ := decl.Span()
	nl := decl.Newline()
	if decl.Indent() != "" || start == decl.LineStart() {
		return &Edit{
			Start: decl.LineStart(),
			End:   decl.LineStart(),
			Text:  render(lines, decl.Indent(), nl),
		}
	}
	return &Edit{
		Start: start,
		End:   start,
		Text:  nl + render(lines, "", nl),
	}
}

func render(lines []string, indent, newline string) string {
	var sb strings.Builder
	for _, line := range prefixed(lines) {
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString(newline)
	}
	return sb.String()
}

func prefixed(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = "///"
		} else {
			out[i] = "/// " + line
		}
	}
	return out
}
