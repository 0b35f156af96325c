package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorTime   = "\x1b[38;5;107m"
	colorName   = "\x1b[38;5;208m"
	colorKey    = "\x1b[38;5;109m"
	colorWarn   = "\x1b[38;5;179m"
	colorWarnBg = "\x1b[48;5;58m"
	colorErr    = "\x1b[38;5;167m"
	colorErrBg  = "\x1b[48;5;52m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  document  Documented file  Foo.cs:12 lines=2"
//
// Context fields added with Logger.With land in the embedded map encoder and
// are rendered alongside the entry's own fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for key, value := range enc.Fields {
		clone.Fields[key] = value
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(colorTime)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  debug")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorName)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	values := make(map[string]interface{}, len(enc.Fields)+len(fields))
	for key, value := range enc.Fields {
		values[key] = value
	}
	entryEnc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(entryEnc)
	}
	for key, value := range entryEnc.Fields {
		values[key] = value
	}

	if rendered := renderFields(values); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorErrBg + colorErr + "ERROR" + colorReset
	default:
		return colorBold + colorErrBg + colorErr + level.CapitalString() + colorReset
	}
}

// renderFields turns every field into text; nothing is discarded.
// file and line collapse into "path:line", duration_ms gets a unit,
// everything else prints as key=value in sorted key order.
func renderFields(values map[string]interface{}) string {
	if len(values) == 0 {
		return ""
	}

	var parts []string
	if file, ok := values[FieldFile]; ok {
		location := fmt.Sprint(file)
		if line, ok := values[FieldLine]; ok {
			location = fmt.Sprintf("%s:%v", location, line)
			delete(values, FieldLine)
		}
		parts = append(parts, location)
		delete(values, FieldFile)
	}
	if duration, ok := values[FieldDurationMS]; ok {
		parts = append(parts, fmt.Sprintf("%vms", duration))
		delete(values, FieldDurationMS)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, colorKey+key+colorReset+"="+fmt.Sprint(values[key]))
	}

	return strings.Join(parts, " ")
}
