package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config - параметры подключения к Fluent Bit.
type Config struct {
	Host      string
	Port      int
	TagPrefix string
	// Async - буферизованная отправка; при недоступном Fluent Bit запись логов не блокируется.
	Async   bool
	Timeout time.Duration
}

// NewClient создает клиент Fluent Bit. Соединение устанавливается лениво,
// поэтому ошибки сети появятся только при первой отправке.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("fluent host is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Async:      cfg.Async,
		Timeout:    timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return client, nil
}
