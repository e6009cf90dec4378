package debug

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger  = zap.NewNop()
	enabled = false
)

// SetOutput sets the debug output destination
// Passing io.Discard or nil turns debug logging off again
func SetOutput(w io.Writer) {
	if w == nil || w == io.Discard {
		logger = zap.NewNop()
		enabled = false
		return
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zapcore.DebugLevel)

	logger = zap.New(core)
	enabled = true
}

// Log writes a debug message
func Log(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// Warn writes a warning that should be visible in the debug log even when
// the caller is not in a debug-only code path
func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

// L returns the structured logger behind the debug log
func L() *zap.Logger {
	return logger
}

// Sync flushes buffered log entries
func Sync() {
	_ = logger.Sync()
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return enabled
}
