package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	sources       = map[string]SourceInfo{}
)

// Load reads the cascaded configuration. The result is cached until Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, tracked, err := cascade("")
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig, viperInstance, sources = cfg, v, tracked
	return globalConfig, nil
}

// LoadFromFile reads configuration from path instead of the user and project
// files. Defaults and environment variables still apply.
func LoadFromFile(path string) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapNotFound(err, "config file "+path)
	}

	v, tracked, err := cascade(path)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", path)
	}

	globalConfig, viperInstance, sources = cfg, v, tracked
	return cfg, nil
}

// LoadWithViper decodes configuration from a prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// GetViper returns the Viper instance behind the last load, or nil.
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return viperInstance
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	sources = map[string]SourceInfo{}
}

// Files returns the configuration files Load would merge, lowest precedence first.
func Files() []string {
	var files []string
	if p := UserConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if p := ProjectConfigPath(); p != "" {
		files = append(files, p)
	}
	return files
}

// UserConfigPath returns ~/.xmldoc/config.toml, whether or not it exists.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDirName, UserFileName)
}

// ProjectConfigPath returns the nearest .xmldoc.toml at or above the working
// directory, or "" when there is none.
func ProjectConfigPath() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findProjectConfig(dir)
}

func findProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// cascade builds a Viper instance: defaults, then files, then env vars.
// An explicit path replaces the user and project files.
func cascade(explicit string) (*viper.Viper, map[string]SourceInfo, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnvVars(v)

	known := make(map[string]bool)
	for _, k := range v.AllKeys() {
		known[k] = true
	}

	tracked := map[string]SourceInfo{}
	if explicit != "" {
		if err := mergeFile(v, explicit, SourceExplicit, known, tracked); err != nil {
			return nil, nil, err
		}
		return v, tracked, nil
	}

	if p := UserConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			if err := mergeFile(v, p, SourceUser, known, tracked); err != nil {
				return nil, nil, err
			}
		}
	}
	if p := ProjectConfigPath(); p != "" {
		if err := mergeFile(v, p, SourceProject, known, tracked); err != nil {
			return nil, nil, err
		}
	}
	return v, tracked, nil
}

// mergeFile sets every leaf key of a TOML file on v, recording where it came
// from. Set values sit above defaults; env vars are consulted on read and
// would lose to them, so keys with an env override are skipped.
func mergeFile(v *viper.Viper, path string, source ConfigSource, known map[string]bool, tracked map[string]SourceInfo) error {
	fileViper := viper.New()
	fileViper.SetConfigFile(path)
	fileViper.SetConfigType("toml")
	if err := fileViper.ReadInConfig(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "failed to read config file %s", path),
			"check the file is valid TOML")
	}

	for _, key := range fileViper.AllKeys() {
		if !known[key] {
			logger.Warnw("Unknown config key ignored",
				"key", key,
				logger.FieldConfig, path)
			continue
		}
		if _, ok := os.LookupEnv(EnvVarName(key)); ok {
			continue
		}
		v.Set(key, fileViper.Get(key))
		tracked[key] = SourceInfo{Source: source, Path: path}
	}

	logger.Debugw("Merged config file",
		logger.FieldConfig, path,
		"source", string(source))
	return nil
}
