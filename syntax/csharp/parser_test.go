package csharp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/syntax"
)

func parse(t *testing.T, src string) *File {
	t.Helper()
	p := NewParser()
	t.Cleanup(p.Close)

	file, err := p.Parse(context.Background(), "Test.cs", []byte(src))
	require.NoError(t, err)
	return file
}

func only(t *testing.T, file *File) *Declaration {
	t.Helper()
	require.Len(t, file.Declarations, 1)
	return file.Declarations[0]
}

func TestParse_ClassWithBaseList(t *testing.T) {
	file := parse(t, `public class Bar : Base, IDisposable
{
}
`)
	decl := only(t, file)

	assert.Equal(t, syntax.KindClass, decl.Kind())
	assert.Equal(t, "Bar", decl.Identifier())
	assert.Equal(t, []string{"Base", "IDisposable"}, decl.BaseTypes())
	assert.Equal(t, 1, decl.Line())
	assert.Equal(t, "", decl.Indent())
	assert.Equal(t, 0, decl.LineStart())
	assert.Nil(t, decl.DocComment())
	assert.False(t, file.HasErrors)
}

func TestParse_NoBaseListIsEmptyNotNil(t *testing.T) {
	decl := only(t, parse(t, "class Foo { }\n"))

	bases := decl.BaseTypes()
	assert.NotNil(t, bases)
	assert.Empty(t, bases)
}

func TestParse_BaseTypeOrderFollowsSource(t *testing.T) {
	forward := only(t, parse(t, "class A : First, Second, Third { }\n"))
	reversed := only(t, parse(t, "class A : Third, Second, First { }\n"))

	assert.Equal(t, []string{"First", "Second", "Third"}, forward.BaseTypes())
	assert.Equal(t, []string{"Third", "Second", "First"}, reversed.BaseTypes())
}

func TestParse_BaseTypesKeptAsWritten(t *testing.T) {
	decl := only(t, parse(t, `class Repo<T> : RepoBase<T>, System.IDisposable, IRepo<T> where T : class
{
}
`))

	assert.Equal(t, "Repo", decl.Identifier())
	assert.Equal(t, []string{"RepoBase<T>", "System.IDisposable", "IRepo<T>"}, decl.BaseTypes())
}

func TestParse_DuplicatesAreNotRemoved(t *testing.T) {
	decl := only(t, parse(t, "class Twice : IFoo, IFoo { }\n"))
	assert.Equal(t, []string{"IFoo", "IFoo"}, decl.BaseTypes())
}

func TestParse_PrimaryConstructorBaseType(t *testing.T) {
	class := only(t, parse(t, "class C(int x) : Base(x), IFoo { }\n"))
	assert.Equal(t, []string{"Base", "IFoo"}, class.BaseTypes())

	record := only(t, parse(t, "record Point(int X) : Shape(X);\n"))
	assert.Equal(t, "Point", record.Identifier())
	assert.Equal(t, []string{"Shape"}, record.BaseTypes())
}

func TestParse_CommentsInBaseListAreSkipped(t *testing.T) {
	decl := only(t, parse(t, `class C : /* c */ Base, // x
    IFoo
{
}
`))
	assert.Equal(t, []string{"Base", "IFoo"}, decl.BaseTypes())
}

func TestParse_MultilineGenericBaseCollapsed(t *testing.T) {
	decl := only(t, parse(t, `class Cache : IDictionary<string,
        int>, IDisposable
{
}
`))
	assert.Equal(t, []string{"IDictionary<string, int>", "IDisposable"}, decl.BaseTypes())
}

func TestParse_BaseTypesCopyIsIndependent(t *testing.T) {
	decl := only(t, parse(t, "class A : B { }\n"))

	first := decl.BaseTypes()
	first[0] = "Mutated"
	assert.Equal(t, []string{"B"}, decl.BaseTypes())
}

func TestParse_NestedDeclarationsInSourceOrder(t *testing.T) {
	file := parse(t, `namespace Shop.Orders
{
    public interface IOrder { }

    public class Order : IOrder
    {
        private class Line : ValueObject
        {
        }
    }

    public enum Status { Open, Closed }

    public struct Money { }
}
`)

	require.Len(t, file.Declarations, 5)
	var names []string
	var kinds []syntax.Kind
	for _, d := range file.Declarations {
		names = append(names, d.Identifier())
		kinds = append(kinds, d.Kind())
	}
	assert.Equal(t, []string{"IOrder", "Order", "Line", "Status", "Money"}, names)
	assert.Equal(t, []syntax.Kind{
		syntax.KindInterface, syntax.KindClass, syntax.KindClass, syntax.KindEnum, syntax.KindStruct,
	}, kinds)

	order := file.Declarations[1]
	assert.Equal(t, "    ", order.Indent())
	assert.Equal(t, []string{"IOrder"}, order.BaseTypes())

	line := file.Declarations[2]
	assert.Equal(t, "        ", line.Indent())
	assert.Equal(t, []string{"ValueObject"}, line.BaseTypes())
	assert.Equal(t, 7, line.Line())
}

func TestParse_DocCommentAboveAttributes(t *testing.T) {
	src := `using System;

/// <summary>
/// Existing text.
/// </summary>
/// <remarks>Kept.</remarks>
[Serializable]
public class Documented { }
`
	decl := only(t, parse(t, src))
	doc := decl.DocComment()
	require.NotNil(t, doc)

	assert.Equal(t, []string{"<summary>", "Existing text.", "</summary>", "<remarks>Kept.</remarks>"}, doc.Lines)
	assert.True(t, doc.HasTag("summary"))
	assert.True(t, doc.HasTag("remarks"))
	assert.False(t, doc.HasTag("param"))

	assert.Equal(t, strings.Index(src, "/// <summary>"), doc.Start)
	assert.Equal(t, strings.Index(src, "[Serializable]"), doc.End)

	start, _ := decl.Span()
	assert.Equal(t, strings.Index(src, "[Serializable]"), start)
}

func TestParse_DocCommentBetweenAttributesAndDeclaration(t *testing.T) {
	src := `[Serializable]
/// <summary>x</summary>
public class A : B { }
`
	decl := only(t, parse(t, src))
	doc := decl.DocComment()
	require.NotNil(t, doc)

	assert.Equal(t, []string{"<summary>x</summary>"}, doc.Lines)
	assert.Equal(t, strings.Index(src, "///"), doc.Start)
	assert.Equal(t, strings.Index(src, "public"), doc.End)
	assert.Equal(t, 0, decl.LineStart())
}

func TestParse_DocCommentAfterAttributesMustBeAdjacent(t *testing.T) {
	decl := only(t, parse(t, `[Serializable]
/// <summary>x</summary>

public class A { }
`))
	assert.Nil(t, decl.DocComment())
}

func TestParse_DocCommentMustBeAdjacent(t *testing.T) {
	decl := only(t, parse(t, `/// <summary>Orphan.</summary>

class Spaced { }
`))
	assert.Nil(t, decl.DocComment())
}

func TestParse_PlainCommentIsNotDocumentation(t *testing.T) {
	decl := only(t, parse(t, `// just a note
class Plain { }
`))
	assert.Nil(t, decl.DocComment())
}

func TestParse_DetectsCRLF(t *testing.T) {
	decl := only(t, parse(t, "class Win : Base\r\n{\r\n}\r\n"))
	assert.Equal(t, "\r\n", decl.Newline())
	assert.Equal(t, []string{"Base"}, decl.BaseTypes())

	unix := only(t, parse(t, "class Unix { }\n"))
	assert.Equal(t, "\n", unix.Newline())
}

func TestParse_ByteOrderMarkKeepsOffsets(t *testing.T) {
	src := "\xEF\xBB\xBFclass Marked : Base { }\n"
	file := parse(t, src)
	decl := only(t, file)

	start, _ := decl.Span()
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, decl.LineStart())
	assert.Equal(t, "", decl.Indent())
	assert.Equal(t, "Marked", decl.Identifier())
	assert.Equal(t, []byte(src), file.Source)
}

func TestParse_RejectsOversizedFiles(t *testing.T) {
	p := NewParser(WithMaxFileSize(8))
	defer p.Close()

	_, err := p.Parse(context.Background(), "Big.cs", []byte("class Big { }"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestParse_EmptySource(t *testing.T) {
	file := parse(t, "")
	assert.Empty(t, file.Declarations)
	assert.False(t, file.HasErrors)
}
