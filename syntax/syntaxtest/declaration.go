// Package syntaxtest provides hand-built declarations for tests that should
// not depend on a parser.
package syntaxtest

import "github.com/teranos/xmldoc/syntax"

// Declaration is a syntax.Declaration with every fact set directly.
// The zero value is an unindented declaration at the start of a "\n" file.
type Declaration struct {
	DeclKind    syntax.Kind
	Name        string
	Bases       []string
	Start       int
	End         int
	StartLine   int
	Indentation string
	LineOffset  int
	Doc         *syntax.Comment
	NL          string
}

var _ syntax.Declaration = (*Declaration)(nil)

// Class returns a class declaration named name with the given base types.
func Class(name string, bases ...string) *Declaration {
	return &Declaration{DeclKind: syntax.KindClass, Name: name, Bases: bases, StartLine: 1}
}

func (d *Declaration) Kind() syntax.Kind           { return d.DeclKind }
func (d *Declaration) Identifier() string          { return d.Name }
func (d *Declaration) Span() (int, int)            { return d.Start, d.End }
func (d *Declaration) Line() int                   { return d.StartLine }
func (d *Declaration) Indent() string              { return d.Indentation }
func (d *Declaration) LineStart() int              { return d.LineOffset }
func (d *Declaration) DocComment() *syntax.Comment { return d.Doc }

// BaseTypes returns a copy, like the real front end.
func (d *Declaration) BaseTypes() []string {
	out := make([]string, len(d.Bases))
	copy(out, d.Bases)
	return out
}

func (d *Declaration) Newline() string {
	if d.NL == "" {
		return "\n"
	}
	return d.NL
}
