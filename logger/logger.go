package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger until Initialize runs, so library callers never see a nil logger
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger.
// jsonOutput selects zap's production JSON encoder; otherwise the minimal console
// encoder is used. verbosity is the CLI -v count (see VerbosityToLevel).
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeWithWriter(jsonOutput, verbosity, os.Stderr)
}

// InitializeWithWriter is Initialize with an explicit sink, used by tests.
func InitializeWithWriter(jsonOutput bool, verbosity int, w io.Writer) error {
	JSONOutput = jsonOutput
	level := VerbosityToLevel(verbosity)

	var zapLogger *zap.Logger
	if jsonOutput {
		// JSON structured output for machine consumption
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapLogger = zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(w),
			zap.NewAtomicLevelAt(level),
		))
	} else {
		// Human-readable console output with minimal formatting
		zapLogger = zap.New(zapcore.NewCore(
			newMinimalEncoder(),
			zapcore.AddSync(w),
			zap.NewAtomicLevelAt(level),
		))
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Named returns a named child of the global logger.
// Components take the result through their constructors.
func Named(name string) *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger.Named(name)
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Infof(format, args...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Debugf(format, args...)
	}
}
