package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xmldoc/errors"
)

type sample struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Bases []string `json:"bases" yaml:"bases" toml:"bases"`
}

func TestEncode(t *testing.T) {
	v := sample{Name: "Bar", Bases: []string{"Base"}}

	tests := []struct {
		format string
		want   []string
	}{
		{FormatJSON, []string{`"name": "Bar"`, `"bases": [`}},
		{FormatYAML, []string{"name: Bar", "- Base"}},
		{FormatTOML, []string{"name = ", "Bar", "bases = "}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tt.format, v))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, "xml", sample{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.Contains(t, errors.FlattenHints(err), "toml, json, yaml")
}

func TestShouldOutputJSON(t *testing.T) {
	t.Setenv("XMLDOC_OUTPUT", "")

	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "child"}
	child.Flags().Bool("json", false, "")
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(child))

	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))

	require.NoError(t, child.Flags().Set("json", "false"))
	assert.False(t, ShouldOutputJSON(child), "local flag overrides global")

	t.Setenv("XMLDOC_OUTPUT", "json")
	assert.True(t, ShouldOutputJSON(nil))
}
