package strategy

import "github.com/teranos/xmldoc/syntax"

// DeclarationFacts is the part of a declaration a summary is built from.
type DeclarationFacts struct {
	Name string

	// BaseTypes are the base-list entries in source order, possibly empty.
	BaseTypes []string
}

// FactsOf snapshots decl. The result shares no memory with decl or with
// earlier snapshots.
func FactsOf(decl syntax.Declaration) DeclarationFacts {
	bases := decl.BaseTypes()
	return DeclarationFacts{
		Name:      decl.Identifier(),
		BaseTypes: append(make([]string, 0, len(bases)), bases...),
	}
}
