package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractBaseTypes returns the entries of a declaration's base list exactly as
// written, in source order. Base classes and interfaces are not told apart,
// nothing is resolved or deduplicated, and a declaration without a base list
// yields an empty, non-nil slice.
//
//	class Repo<T> : RepoBase, IRepo<T>, System.IDisposable   ->  [RepoBase IRepo<T> System.IDisposable]
//	record Point(int X) : Shape(X)                           ->  [Shape]
func ExtractBaseTypes(node *sitter.Node, src []byte) []string {
	names := []string{}
	bases := baseList(node)
	if bases == nil {
		return names
	}

	for i := 0; i < int(bases.NamedChildCount()); i++ {
		child := bases.NamedChild(i)
		switch child.Type() {
		case "comment", "argument_list":
			continue
		case "primary_constructor_base_type":
			// Shape(X): keep only the type part
			if t := child.ChildByFieldName("type"); t != nil {
				child = t
			} else if child.NamedChildCount() > 0 {
				child = child.NamedChild(0)
			}
		}
		if name := collapseSpace(child.Content(src)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// baseList finds the base_list child, whether or not the grammar version
// exposes it as the "bases" field.
func baseList(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if b := node.ChildByFieldName("bases"); b != nil {
		return b
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "base_list" {
			return child
		}
	}
	return nil
}

// collapseSpace folds whitespace runs that span lines into one space, so a
// generic argument list broken across lines still renders on one line.
func collapseSpace(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
