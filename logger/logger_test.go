package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			var buf bytes.Buffer
			require.NoError(t, InitializeWithWriter(tt.jsonOutput, VerbosityInfo, &buf))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Infow("documented file", FieldFile, "Foo.cs", FieldCount, 2)
			Cleanup()
			assert.Contains(t, buf.String(), "documented file")
		})
	}
}

func TestInitializeJSONIsParseable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(true, VerbosityDebug, &buf))

	Named("strategy").Debugw("composed summary", FieldDeclaration, "Bar", FieldLines, 2)
	Cleanup()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "composed summary", entry["msg"])
	assert.Equal(t, "strategy", entry["logger"])
	assert.Equal(t, "Bar", entry[FieldDeclaration])
}

func TestVerbosityGatesLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(false, VerbosityUser, &buf))

	Infow("hidden at default verbosity")
	Debugw("also hidden")
	Warnw("visible warning")
	Cleanup()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "WARN")
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(VerbosityUser, OutputResults))
	assert.False(t, ShouldOutput(VerbosityUser, OutputProgress))
	assert.True(t, ShouldOutput(VerbosityInfo, OutputUnchanged))
	assert.False(t, ShouldOutput(VerbosityInfo, OutputSkipped))
	assert.True(t, ShouldOutput(VerbosityDebug, OutputTiming))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputSummaries))
	assert.True(t, ShouldOutput(VerbosityTrace, OutputSummaries))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCategory(99)))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(true, VerbosityInfo, &buf))

	ctx := WithComponent(WithFile(context.Background(), "src/Foo.cs"), "document")
	FromContext(ctx, nil).Infow("rewrote file")
	Cleanup()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "src/Foo.cs", entry[FieldFile])
	assert.Equal(t, "document", entry[FieldComponent])
}

func TestNamedBeforeInitialize(t *testing.T) {
	Logger = nil
	l := Named("anything")
	require.NotNil(t, l)
	l.Infow("goes nowhere")
}
