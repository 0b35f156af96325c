package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Default values, shared by SetDefaults and the starter file written by WriteDefault.
const (
	DefaultSummaryTemplate     = "The {name} class."
	DefaultInheritanceTemplate = "Inherits from {list}."
	DefaultExisting            = "keep"
)

var (
	DefaultInclude = []string{"**/*.cs"}
	DefaultExclude = []string{"**/bin/**", "**/obj/**", "**/*.Designer.cs", "**/*.g.cs"}
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workers", 0) // one per CPU

	v.SetDefault("class.enabled", true)
	v.SetDefault("class.summary.template", DefaultSummaryTemplate)
	v.SetDefault("class.summary.include_inheritance", true)
	v.SetDefault("class.summary.inheritance_template", DefaultInheritanceTemplate)

	v.SetDefault("format.cref_links", false)
	v.SetDefault("format.list_separator", ", ")
	v.SetDefault("format.last_separator", ", ")
	v.SetDefault("format.escape_xml", true)

	v.SetDefault("builder.existing", DefaultExisting)

	v.SetDefault("files.include", DefaultInclude)
	v.SetDefault("files.exclude", DefaultExclude)
	v.SetDefault("files.changed_only", false)

	v.SetDefault("log.json", false)
}

// BindEnvVars maps XMLDOC_* environment variables onto config keys, e.g.
// XMLDOC_CLASS_SUMMARY_TEMPLATE overrides class.summary.template.
func BindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env values for keys viper already knows; the
	// defaults register every key, these are listed for discoverability.
	v.BindEnv("workers", "XMLDOC_WORKERS")
	v.BindEnv("builder.existing", "XMLDOC_BUILDER_EXISTING")
	v.BindEnv("log.json", "XMLDOC_LOG_JSON")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

// EnvVarName returns the environment variable that overrides key.
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
