// Package config loads xmldoc settings.
//
// Values cascade from built-in defaults, through the user file
// (~/.xmldoc/config.toml) and the nearest project .xmldoc.toml, to XMLDOC_*
// environment variables. Later sources win key by key.
package config

import (
	"fmt"
	"runtime"

	"github.com/teranos/xmldoc/format"
)

const (
	// ProjectFileName is looked up from the working directory towards the root.
	ProjectFileName = ".xmldoc.toml"

	// UserDirName holds the user-level config under the home directory.
	UserDirName      = ".xmldoc"
	UserFileName     = "config.toml"
	EnvPrefix        = "XMLDOC"
	DefaultFilePerms = 0o644
	DefaultDirPerms  = 0o750
)

// Config is the complete xmldoc configuration.
type Config struct {
	Workers int           `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"` // 0 = one per CPU
	Class   ClassConfig   `mapstructure:"class" toml:"class" json:"class" yaml:"class"`
	Format  FormatConfig  `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Builder BuilderConfig `mapstructure:"builder" toml:"builder" json:"builder" yaml:"builder"`
	Files   FilesConfig   `mapstructure:"files" toml:"files" json:"files" yaml:"files"`
	Log     LogConfig     `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// ClassConfig configures documentation of class declarations.
type ClassConfig struct {
	Enabled bool          `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Summary SummaryConfig `mapstructure:"summary" toml:"summary" json:"summary" yaml:"summary"`
}

// SummaryConfig drives summary composition. It is read-only once loaded.
type SummaryConfig struct {
	Template            string `mapstructure:"template" toml:"template" json:"template" yaml:"template"`
	IncludeInheritance  bool   `mapstructure:"include_inheritance" toml:"include_inheritance" json:"include_inheritance" yaml:"include_inheritance"`
	InheritanceTemplate string `mapstructure:"inheritance_template" toml:"inheritance_template" json:"inheritance_template" yaml:"inheritance_template"`
}

// FormatConfig configures the template formatter.
type FormatConfig struct {
	CrefLinks     bool   `mapstructure:"cref_links" toml:"cref_links" json:"cref_links" yaml:"cref_links"`
	ListSeparator string `mapstructure:"list_separator" toml:"list_separator" json:"list_separator" yaml:"list_separator"`
	LastSeparator string `mapstructure:"last_separator" toml:"last_separator" json:"last_separator" yaml:"last_separator"`
	EscapeXML     bool   `mapstructure:"escape_xml" toml:"escape_xml" json:"escape_xml" yaml:"escape_xml"`
}

// BuilderConfig configures how summaries merge with existing comments.
type BuilderConfig struct {
	Existing string `mapstructure:"existing" toml:"existing" json:"existing" yaml:"existing"` // keep | merge
}

// FilesConfig selects the files to document.
type FilesConfig struct {
	Include     []string `mapstructure:"include" toml:"include" json:"include" yaml:"include"`
	Exclude     []string `mapstructure:"exclude" toml:"exclude" json:"exclude" yaml:"exclude"`
	ChangedOnly bool     `mapstructure:"changed_only" toml:"changed_only" json:"changed_only" yaml:"changed_only"`
}

// LogConfig configures log output.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// Formatter returns the template formatter described by the [format] section.
func (c *Config) Formatter() format.TemplateFormatter {
	return format.TemplateFormatter{
		CrefLinks:     c.Format.CrefLinks,
		ListSeparator: c.Format.ListSeparator,
		LastSeparator: c.Format.LastSeparator,
		EscapeXML:     c.Format.EscapeXML,
	}
}

// EffectiveWorkers resolves workers = 0 to the CPU count.
func (c *Config) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Workers: %d, Class: {Enabled: %t, Inheritance: %t}, Existing: %s}",
		c.Workers, c.Class.Enabled, c.Class.Summary.IncludeInheritance, c.Builder.Existing)
}
