package resp_test

import (
	"bytes"
	"log/slog"

	"github.com/xy-planning-network/personachat/logger"
)

// testLogger records the messages logged through it.
type testLogger struct {
	*bytes.Buffer
}

func newLogger() testLogger { return testLogger{new(bytes.Buffer)} }

func (tl testLogger) Debug(msg string, _ *logger.LogContext) { tl.WriteString(msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { tl.WriteString(msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { tl.WriteString(msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { tl.WriteString(msg) }
func (tl testLogger) LogLevel() slog.Level                   { return slog.LevelDebug }
