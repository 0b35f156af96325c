package strategy

import (
	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/format"
)

// Compose renders the summary lines for facts.
//
// The name line always comes first. The inheritance line follows only when
// cfg.IncludeInheritance is set and facts has at least one base type, so the
// result has one or two lines. Formatter errors are returned as is and no
// partial result is produced.
func Compose(facts DeclarationFacts, cfg config.SummaryConfig, f format.Formatter) ([]string, error) {
	subject := format.Name(facts.Name)

	nameLine, err := f.FormatName(cfg.Template, subject)
	if err != nil {
		return nil, err
	}
	lines := []string{nameLine}

	if cfg.IncludeInheritance && len(facts.BaseTypes) > 0 {
		inherits, err := f.FormatInherits(cfg.InheritanceTemplate, subject, facts.BaseTypes)
		if err != nil {
			return nil, err
		}
		lines = append(lines, inherits)
	}

	return lines, nil
}
