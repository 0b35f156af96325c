// Package syntax defines the language-neutral view of a parsed type declaration
// that documentation strategies consume.
//
// A front end (see syntax/csharp) turns source text into Declarations. The
// strategy layer reads only what this package exposes, so strategies can be
// tested with hand-built declarations and never touch a parse tree.
package syntax

import "strings"

// Kind tags a declaration with its syntax kind. Values are the tree-sitter
// node type names of the C# grammar so the front end can use them directly.
type Kind string

const (
	KindClass     Kind = "class_declaration"
	KindInterface Kind = "interface_declaration"
	KindStruct    Kind = "struct_declaration"
	KindRecord    Kind = "record_declaration"
	KindEnum      Kind = "enum_declaration"
)

// Kinds lists every declaration kind the front end emits, in a stable order.
var Kinds = []Kind{KindClass, KindInterface, KindStruct, KindRecord, KindEnum}

// IsDeclarationKind reports whether nodeType names a type declaration.
func IsDeclarationKind(nodeType string) bool {
	for _, k := range Kinds {
		if string(k) == nodeType {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Declaration is a parsed type declaration.
//
// Identifier and BaseTypes are the structural facts summaries are built from.
// The remaining methods describe where the declaration sits in its file so a
// builder can attach documentation without re-parsing.
type Declaration interface {
	Kind() Kind

	// Identifier is the declared name. Front ends never emit an empty one.
	Identifier() string

	// BaseTypes are the base-list entries exactly as written, in source order.
	// Base classes and implemented interfaces are not distinguished.
	BaseTypes() []string

	// Span is the byte range of the declaration, attributes included.
	Span() (start, end int)

	// Line is the 1-based line the declaration starts on.
	Line() int

	// Indent is the whitespace preceding the declaration on its first line,
	// or "" when other code shares that line.
	Indent() string

	// LineStart is the byte offset of the start of the declaration's first line.
	LineStart() int

	// DocComment is the contiguous /// block directly above the declaration, or nil.
	DocComment() *Comment

	// Newline is the line terminator used by the file ("\n" or "\r\n").
	Newline() string
}

// Comment is an existing documentation comment.
type Comment struct {
	// Start and End bound the comment in the file. Start is the beginning of
	// the first comment line (indentation included); End is just past the
	// last comment line's terminator.
	Start int
	End   int

	// Lines holds the comment text with the leading "///" and one optional
	// space removed.
	Lines []string
}

// HasTag reports whether the comment contains an opening XML tag such as <summary>.
func (c *Comment) HasTag(tag string) bool {
	if c == nil {
		return false
	}
	open := "<" + tag
	for _, line := range c.Lines {
		if indexTag(line, open) >= 0 {
			return true
		}
	}
	return false
}

// indexTag finds "<tag" followed by '>', whitespace or '/'.
func indexTag(line, open string) int {
	for from := 0; from < len(line); {
		rel := strings.Index(line[from:], open)
		if rel < 0 {
			return -1
		}
		at := from + rel
		next := at + len(open)
		if next == len(line) {
			return at
		}
		switch line[next] {
		case '>', ' ', '\t', '/':
			return at
		}
		from = at + 1
	}
	return -1
}
