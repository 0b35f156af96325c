package config

import (
	"os"
	"sort"

	"github.com/teranos/xmldoc/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.xmldoc/config.toml
	SourceProject     ConfigSource = "project"     // nearest .xmldoc.toml
	SourceExplicit    ConfigSource = "explicit"    // --config
	SourceEnvironment ConfigSource = "environment" // XMLDOC_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // file path or environment variable name
}

// SettingInfo is one effective setting and its origin.
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// Introspect lists every effective setting, sorted by key, with its source.
// It loads the configuration if nothing has been loaded yet.
func Introspect() ([]SettingInfo, error) {
	if GetViper() == nil {
		if _, err := Load(); err != nil {
			return nil, errors.Wrap(err, "failed to load config for introspection")
		}
	}

	mu.Lock()
	v := viperInstance
	tracked := make(map[string]SourceInfo, len(sources))
	for k, s := range sources {
		tracked[k] = s
	}
	mu.Unlock()

	keys := v.AllKeys()
	sort.Strings(keys)

	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := tracked[key]; ok {
			info = si
		}
		env := EnvVarName(key)
		if _, ok := os.LookupEnv(env); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: env}
		}
		settings = append(settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return settings, nil
}
