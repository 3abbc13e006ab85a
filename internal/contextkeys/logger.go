package contextkeys

import (
	"context"
	"property-catalog/internal/core/port"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger помещает логгер в контекст
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext извлекает логгер из контекста.
// Если логгера нет, возвращается логгер, который ничего не делает.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if ctx == nil {
		return NoopLogger{}
	}
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok && logger != nil {
		return logger
	}
	return NoopLogger{}
}

// NoopLogger - реализация LoggerPort, которая ничего не делает
type NoopLogger struct{}

func (n NoopLogger) Info(msg string, fields port.Fields)             {}
func (n NoopLogger) Warn(msg string, fields port.Fields)             {}
func (n NoopLogger) Error(msg string, err error, fields port.Fields) {}
func (n NoopLogger) Debug(msg string, fields port.Fields)            {}
func (n NoopLogger) WithFields(fields port.Fields) port.LoggerPort   { return n }

// HasLogger сообщает, что в контексте уже есть логгер.
func HasLogger(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	_, ok := ctx.Value(loggerKey).(port.LoggerPort)
	return ok
}
