package strategy

import (
	"go.uber.org/zap"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/docbuilder"
	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/format"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/syntax"
)

// ClassStrategy documents class declarations from their name and base list.
type ClassStrategy struct {
	logger    *zap.SugaredLogger
	formatter format.Formatter
	options   config.SummaryConfig
	builder   *docbuilder.Builder
}

var _ Strategy = (*ClassStrategy)(nil)

// NewClassStrategy creates a class strategy. A nil logger falls back to the
// package logger, a nil builder to one with the keep policy.
func NewClassStrategy(log *zap.SugaredLogger, formatter format.Formatter, options config.SummaryConfig, builder *docbuilder.Builder) *ClassStrategy {
	if log == nil {
		log = logger.Named("strategy.class")
	}
	if builder == nil {
		builder = docbuilder.New(docbuilder.PolicyKeep, log)
	}
	return &ClassStrategy{
		logger:    log,
		formatter: formatter,
		options:   options,
		builder:   builder,
	}
}

func (s *ClassStrategy) Name() string { return "class" }

func (s *ClassStrategy) SupportedKinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindClass}
}

// Apply composes the class summary and hands it to the builder.
func (s *ClassStrategy) Apply(decl syntax.Declaration) (*docbuilder.Documented, error) {
	if decl.Kind() != syntax.KindClass {
		return nil, errors.NewUnsupportedKindError(decl.Kind().String())
	}

	facts := FactsOf(decl)
	summary, err := Compose(facts, s.options, s.formatter)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("Composed class summary",
		logger.FieldDeclaration, facts.Name,
		logger.FieldBaseTypes, facts.BaseTypes,
		logger.FieldLines, len(summary))

	return s.builder.Build(decl, summary)
}
