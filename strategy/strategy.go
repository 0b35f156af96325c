// Package strategy turns parsed declarations into documented ones.
//
// Each Strategy handles a fixed set of declaration kinds. A Registry maps
// every kind to exactly one strategy and routes declarations by kind; kinds
// without a strategy are reported as unsupported so callers can skip them.
package strategy

import (
	"github.com/teranos/xmldoc/docbuilder"
	"github.com/teranos/xmldoc/syntax"
)

// Strategy documents declarations of the kinds it supports.
//
// Implementations are read-only after construction and safe for concurrent
// use. Apply must not modify decl and either returns a complete result or an
// error.
type Strategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string

	// SupportedKinds is non-empty and fixed for the strategy's lifetime.
	SupportedKinds() []syntax.Kind

	Apply(decl syntax.Declaration) (*docbuilder.Documented, error)
}
