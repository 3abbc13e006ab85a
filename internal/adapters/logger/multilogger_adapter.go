package logger_adapter

import (
	"errors"
	"io"
	"property-catalog/internal/core/port"
)

// MultiLoggerAdapter рассылает каждую запись во все вложенные логгеры.
type MultiLoggerAdapter struct {
	loggers []port.LoggerPort
}

// NewMultiloggerAdapter пропускает nil-логгеры; нужен хотя бы один настоящий.
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (*MultiLoggerAdapter, error) {
	active := make([]port.LoggerPort, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return nil, errors.New("multilogger: at least one logger is required")
	}
	return &MultiLoggerAdapter{loggers: active}, nil
}

func (m *MultiLoggerAdapter) each(write func(port.LoggerPort)) {
	for _, l := range m.loggers {
		write(l)
	}
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Info(msg, fields) })
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Warn(msg, fields) })
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Error(msg, err, fields) })
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Debug(msg, fields) })
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	enriched := make([]port.LoggerPort, 0, len(m.loggers))
	m.each(func(l port.LoggerPort) { enriched = append(enriched, l.WithFields(fields)) })
	return &MultiLoggerAdapter{loggers: enriched}
}

// Close закрывает логгеры, держащие соединения (Fluent Bit). Вызывается один раз при остановке.
func (m *MultiLoggerAdapter) Close() error {
	var errs []error
	m.each(func(l port.LoggerPort) {
		if closer, ok := l.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	})
	return errors.Join(errs...)
}
