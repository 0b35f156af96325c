// Package format renders summary templates.
//
// Templates use brace placeholders: {name} for the documented declaration and
// {list} for a rendered list of type names. Anything else in braces is copied
// through untouched; template syntax is not validated beyond the placeholders a
// call requires.
package format

import (
	"strings"

	"github.com/teranos/xmldoc/errors"
)

// Placeholder keys understood by the formatter.
const (
	KeyName = "name"
	KeyList = "list"
)

const (
	DefaultListSeparator = ", "
	DefaultLastSeparator = ", "
)

// Pair binds a placeholder key to its value.
type Pair struct {
	Key   string
	Value string
}

// Name is shorthand for a {name} pair.
func Name(value string) Pair {
	return Pair{Key: KeyName, Value: value}
}

// Placeholder returns the template token for key, e.g. "{name}".
func Placeholder(key string) string {
	return "{" + key + "}"
}

// Formatter renders templates. Implementations must be pure and safe for
// concurrent use.
type Formatter interface {
	// FormatName substitutes each pair into template. Every pair's placeholder
	// must appear in the template.
	FormatName(template string, pairs ...Pair) (string, error)

	// FormatInherits renders names into the {list} placeholder, which must be
	// present, and substitutes subject if its placeholder appears.
	FormatInherits(template string, subject Pair, names []string) (string, error)
}

// TemplateFormatter is the default Formatter.
type TemplateFormatter struct {
	// CrefLinks renders each listed type as <see cref="T"/> instead of text.
	CrefLinks bool

	// ListSeparator goes between listed names, LastSeparator before the final
	// one. Empty values fall back to ", ".
	ListSeparator string
	LastSeparator string

	// EscapeXML escapes &, < and > in substituted values.
	EscapeXML bool
}

var _ Formatter = TemplateFormatter{}

// FormatName implements Formatter.
func (f TemplateFormatter) FormatName(template string, pairs ...Pair) (string, error) {
	oldnew := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		ph := Placeholder(p.Key)
		if !strings.Contains(template, ph) {
			return "", missingPlaceholder(template, ph)
		}
		oldnew = append(oldnew, ph, f.text(p.Value))
	}
	if len(oldnew) == 0 {
		return template, nil
	}
	// Single pass, so a value that looks like a placeholder is not expanded.
	return strings.NewReplacer(oldnew...).Replace(template), nil
}

// FormatInherits implements Formatter.
func (f TemplateFormatter) FormatInherits(template string, subject Pair, names []string) (string, error) {
	listPH := Placeholder(KeyList)
	if !strings.Contains(template, listPH) {
		return "", missingPlaceholder(template, listPH)
	}

	rendered := make([]string, len(names))
	for i, n := range names {
		if f.CrefLinks {
			rendered[i] = Cref(n)
		} else {
			rendered[i] = f.text(n)
		}
	}

	oldnew := []string{listPH, f.join(rendered)}
	if subject.Key != "" && subject.Key != KeyList {
		oldnew = append(oldnew, Placeholder(subject.Key), f.text(subject.Value))
	}
	return strings.NewReplacer(oldnew...).Replace(template), nil
}

func (f TemplateFormatter) text(s string) string {
	if f.EscapeXML {
		return EscapeText(s)
	}
	return s
}

func (f TemplateFormatter) join(items []string) string {
	sep := f.ListSeparator
	if sep == "" {
		sep = DefaultListSeparator
	}
	last := f.LastSeparator
	if last == "" {
		last = DefaultLastSeparator
	}

	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], sep) + last + items[len(items)-1]
}

func missingPlaceholder(template, ph string) error {
	err := errors.NewConfigurationError("template %q has no %s placeholder", template, ph)
	return errors.WithHintf(err, "add %s to the template in your .xmldoc.toml", ph)
}
