// Package csharp is the C# front end: it parses source with tree-sitter and
// snapshots every type declaration as a syntax.Declaration.
//
// A Parser wraps one tree-sitter parser and is not safe for concurrent use;
// create one per goroutine. The Declarations it returns copy everything they
// need out of the tree, so they stay valid after Parse returns.
package csharp

import (
	"bytes"
	"context"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"go.uber.org/zap"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/syntax"
)

// DefaultMaxFileSize bounds the files the parser accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser parses C# source files.
type Parser struct {
	parser      *sitter.Parser
	maxFileSize int64
	logger      *zap.SugaredLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxFileSize sets the largest file, in bytes, the parser will accept.
func WithMaxFileSize(bytes int64) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a C# parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		parser:      sitter.NewParser(),
		maxFileSize: DefaultMaxFileSize,
		logger:      logger.Named("csharp"),
	}
	p.parser.SetLanguage(csharp.GetLanguage())
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.parser.Close()
}

// File is the result of parsing one source file.
type File struct {
	Path   string
	Source []byte

	// Declarations holds every type declaration in source order, nested ones included.
	Declarations []*Declaration

	// HasErrors is set when tree-sitter recovered from syntax errors.
	HasErrors bool
}

// Parse parses src and snapshots its type declarations.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	start := time.Now()

	if int64(len(src)) > p.maxFileSize {
		return nil, errors.Mark(
			errors.Newf("%s: size %d exceeds limit %d", path, len(src), p.maxFileSize),
			errors.ErrInvalidRequest)
	}

	// The grammar has no rule for a byte-order mark; blank it out so offsets
	// still line up with the original bytes.
	input, floor := src, 0
	if bytes.HasPrefix(src, utf8BOM) {
		input = append([]byte("   "), src[len(utf8BOM):]...)
		floor = len(utf8BOM)
	}

	tree, err := p.parser.ParseCtx(ctx, nil, input)
	if err != nil {
		return nil, errors.Wrapf(err, "tree-sitter parse of %s failed", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &File{
		Path:      path,
		Source:    src,
		HasErrors: root.HasError(),
	}

	newline := detectNewline(src)
	walk(root, func(n *sitter.Node) {
		if !syntax.IsDeclarationKind(n.Type()) {
			return
		}
		decl := newDeclaration(n, input, newline, floor)
		if decl == nil {
			return
		}
		file.Declarations = append(file.Declarations, decl)
	})

	p.logger.Debugw("Parsed file",
		logger.FieldFile, path,
		logger.FieldCount, len(file.Declarations),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
		"syntax_errors", file.HasErrors)

	return file, nil
}

// walk visits n and its named descendants in pre-order, which is source order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visit)
	}
}

func detectNewline(src []byte) string {
	if bytes.Contains(src, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}
