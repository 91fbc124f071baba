// Package log provides structured logging for the install pipeline.
//
// Loggers are passed explicitly into each component; there is no package
// or process global. Output is JSON to stderr by default.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with install-directory context so every entry from
// one service instance is attributable to the directory it manages.
type Logger struct {
	zap *zap.Logger
}

// New creates a logger writing JSON to stderr, stamped with the install
// directory the owning service manages.
func New(installDir string) *Logger {
	return NewWithWriter(installDir, os.Stderr)
}

// NewWithWriter creates a logger writing to w. Tests use this to capture
// output.
func NewWithWriter(installDir string, w io.Writer) *Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return &Logger{zap: zap.New(core).With(zap.String("install_dir", installDir))}
}

// Nop returns a logger that discards everything. Component tests that do
// not assert on logs use it.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
}

// With returns a logger with additional structured fields attached.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields ...zap.Field) {
	l.zap.Debug(message, fields...)
}

// Info logs an info message.
func (l *Logger) Info(message string, fields ...zap.Field) {
	l.zap.Info(message, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields ...zap.Field) {
	l.zap.Warn(message, fields...)
}

// Error logs an error message.
func (l *Logger) Error(message string, fields ...zap.Field) {
	l.zap.Error(message, fields...)
}
