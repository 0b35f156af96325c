package csharp

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/teranos/xmldoc/syntax"
)

// Declaration is a snapshot of a C# type declaration.
type Declaration struct {
	kind       syntax.Kind
	name       string
	baseTypes  []string
	start, end int
	line       int
	lineStart  int
	indent     string
	doc        *syntax.Comment
	newline    string
}

var _ syntax.Declaration = (*Declaration)(nil)

// newDeclaration snapshots n. It returns nil for declarations without a name,
// which tree-sitter produces only while recovering from syntax errors.
// Line starts never precede floor, the end of a byte-order mark.
func newDeclaration(n *sitter.Node, src []byte, newline string, floor int) *Declaration {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := strings.TrimSpace(nameNode.Content(src))
	if name == "" {
		return nil
	}

	start := int(n.StartByte())
	lineStart := max(bytes.LastIndexByte(src[:start], '\n')+1, floor)
	indent := string(src[lineStart:start])
	if strings.TrimSpace(indent) != "" {
		indent = ""
	}

	return &Declaration{
		kind:      syntax.Kind(n.Type()),
		name:      name,
		baseTypes: ExtractBaseTypes(n, src),
		start:     start,
		end:       int(n.EndByte()),
		line:      int(n.StartPoint().Row) + 1,
		lineStart: lineStart,
		indent:    indent,
		doc:       docComment(n, src, floor),
		newline:   newline,
	}
}

func (d *Declaration) Kind() syntax.Kind           { return d.kind }
func (d *Declaration) Identifier() string          { return d.name }
func (d *Declaration) Line() int                   { return d.line }
func (d *Declaration) Indent() string              { return d.indent }
func (d *Declaration) LineStart() int              { return d.lineStart }
func (d *Declaration) Newline() string             { return d.newline }
func (d *Declaration) Span() (int, int)            { return d.start, d.end }
func (d *Declaration) DocComment() *syntax.Comment { return d.doc }

// BaseTypes returns a copy, so callers can keep it past the next call.
func (d *Declaration) BaseTypes() []string {
	out := make([]string, len(d.baseTypes))
	copy(out, d.baseTypes)
	return out
}

// docComment collects the /// lines directly above n, or failing that the
// /// lines between n's attributes and the rest of the declaration. A blank
// line, a non-doc comment or any other token ends the block.
func docComment(n *sitter.Node, src []byte, floor int) *syntax.Comment {
	var block []*sitter.Node
	expectRow := n.StartPoint().Row
	for prev := n.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		if !isDocLine(prev, src) {
			break
		}
		if prev.EndPoint().Row+1 != expectRow {
			break
		}
		block = append([]*sitter.Node{prev}, block...)
		expectRow = prev.StartPoint().Row
	}
	if len(block) == 0 {
		block = attributedDocBlock(n, src)
	}
	if len(block) == 0 {
		return nil
	}

	first, last := block[0], block[len(block)-1]
	comment := &syntax.Comment{
		Start: max(bytes.LastIndexByte(src[:first.StartByte()], '\n')+1, floor),
		End:   lineEnd(src, int(last.EndByte())),
	}
	for _, c := range block {
		text := strings.TrimSuffix(c.Content(src), "\r")
		text = strings.TrimPrefix(text, "///")
		text = strings.TrimPrefix(text, " ")
		comment.Lines = append(comment.Lines, text)
	}
	return comment
}

// attributedDocBlock finds a /// block placed after the attribute lists,
//
//	[Serializable]
//	/// <summary>...</summary>
//	public class A { }
//
// which tree-sitter keeps inside the declaration node.
func attributedDocBlock(n *sitter.Node, src []byte) []*sitter.Node {
	var block []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "attribute_list":
			block = nil
		case "comment":
			switch {
			case !isDocLine(child, src):
				block = nil
			case i > 0 && n.Child(i-1).EndPoint().Row == child.StartPoint().Row:
				// trails other code on its line
				block = nil
			case len(block) > 0 && block[len(block)-1].EndPoint().Row+1 != child.StartPoint().Row:
				block = []*sitter.Node{child}
			default:
				block = append(block, child)
			}
		default:
			if len(block) > 0 && block[len(block)-1].EndPoint().Row+1 == child.StartPoint().Row {
				return block
			}
			return nil
		}
	}
	return nil
}

func isDocLine(n *sitter.Node, src []byte) bool {
	return strings.HasPrefix(n.Content(src), "///")
}

// lineEnd returns the offset just past the line terminator at or after pos.
func lineEnd(src []byte, pos int) int {
	idx := bytes.IndexByte(src[pos:], '\n')
	if idx < 0 {
		return len(src)
	}
	return pos + idx + 1
}
