package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/xmldoc/errors"
)

// Output formats understood by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// MarshalJSON marshals v as indented JSON.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteJSON writes v to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Encode writes v to w in format, which must be json, yaml or toml.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		_, err := w.Write(buf.Bytes())
		return err

	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to marshal TOML")
		}
		_, err := w.Write(buf.Bytes())
		return err

	default:
		return errors.WithHint(
			errors.Mark(errors.Newf("unsupported format: %s", format), errors.ErrInvalidRequest),
			"supported formats: toml, json, yaml")
	}
}
