package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/xmldoc/docbuilder"
	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/format"
)

// Validate checks that the configuration is valid. Template problems come
// back as configuration errors so they read the same as those the formatter
// would raise later.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Newf("workers must be >= 0, got %d (0 = one per CPU)", c.Workers)
	}

	if c.Class.Enabled {
		s := c.Class.Summary
		if !strings.Contains(s.Template, format.Placeholder(format.KeyName)) {
			return errors.WithHint(
				errors.NewConfigurationError("class.summary.template %q has no {name} placeholder", s.Template),
				`e.g. template = "The {name} class."`)
		}
		if s.IncludeInheritance && !strings.Contains(s.InheritanceTemplate, format.Placeholder(format.KeyList)) {
			return errors.WithHint(
				errors.NewConfigurationError("class.summary.inheritance_template %q has no {list} placeholder", s.InheritanceTemplate),
				"set include_inheritance = false to drop the inheritance line")
		}
	}

	if _, err := docbuilder.ParsePolicy(c.Builder.Existing); err != nil {
		return errors.Wrap(err, "builder.existing")
	}

	if len(c.Files.Include) == 0 {
		return errors.New("files.include cannot be empty")
	}
	for _, p := range c.Files.Include {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf("files.include: invalid pattern %q", p)
		}
	}
	for _, p := range c.Files.Exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf("files.exclude: invalid pattern %q", p)
		}
	}

	return nil
}
