package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
)

const starterHeader = `# xmldoc configuration
# Placeholders: {name} is the declared type, {list} its base types.

`

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return buf.Bytes(), nil
}

// WriteDefault writes a starter config with the built-in defaults to path.
// An existing file is only replaced when force is set, and is rotated into
// .back1..3 first.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it (a .back1 copy is kept)")
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPerms); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	MarkOwnWrite(path)

	if err := os.WriteFile(path, append([]byte(starterHeader), data...), DefaultFilePerms); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup",
			logger.FieldFile, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePerms); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
