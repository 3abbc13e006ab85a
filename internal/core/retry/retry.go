// Package retry повторяет операции чтения при временных сбоях с экспоненциальной задержкой.
package retry

import (
	"context"
	"property-catalog/internal/core/apierr"
	"time"
)

// Options - настройки политики повторов. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	// MaxAttempts - общее число попыток, включая первую.
	MaxAttempts int
	// Delay - пауза перед первым повтором. 0 - значение по умолчанию, NoDelay - повтор без паузы.
	Delay             time.Duration
	BackoffMultiplier float64
	// RetryableStatusCodes - коды, при которых есть смысл повторить запрос.
	RetryableStatusCodes []int
	// OnRetry вызывается перед каждой паузой. attempt - номер неудавшейся попытки.
	OnRetry func(attempt int, err *apierr.APIError)
}

// NoDelay отключает паузу между попытками.
const NoDelay time.Duration = -1

// DefaultRetryableStatusCodes - 408, 429 и временные ошибки сервера.
var DefaultRetryableStatusCodes = []int{408, 429, 500, 502, 503, 504}

func DefaultOptions() Options {
	return Options{
		MaxAttempts:          3,
		Delay:                1 * time.Second,
		BackoffMultiplier:    2,
		RetryableStatusCodes: DefaultRetryableStatusCodes,
		OnRetry:              func(int, *apierr.APIError) {},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	switch {
	case o.Delay == 0:
		o.Delay = def.Delay
	case o.Delay < 0:
		o.Delay = 0
	}
	if o.BackoffMultiplier <= 0 {
		o.BackoffMultiplier = def.BackoffMultiplier
	}
	if o.RetryableStatusCodes == nil {
		o.RetryableStatusCodes = def.RetryableStatusCodes
	}
	if o.OnRetry == nil {
		o.OnRetry = def.OnRetry
	}
	return o
}

func (o Options) isRetryable(statusCode int) bool {
	for _, code := range o.RetryableStatusCodes {
		if code == statusCode {
			return true
		}
	}
	return false
}

// sleep подменяется в тестах.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do выполняет operation, повторяя ее при ошибках с кодом из RetryableStatusCodes.
// Попытки идут строго последовательно, их не больше MaxAttempts.
// Ошибка всегда имеет тип *apierr.APIError.
func Do[T any](ctx context.Context, operation func(ctx context.Context) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()
	delay := opts.Delay

	var zero T
	for attempt := 1; ; attempt++ {
		result, err := operation(ctx)
		if err == nil {
			return result, nil
		}

		apiErr := apierr.Parse(err)
		if attempt >= opts.MaxAttempts || !opts.isRetryable(apiErr.StatusCode) {
			return zero, apiErr
		}

		opts.OnRetry(attempt, apiErr)

		if delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return zero, apierr.Parse(err)
			}
		} else if err := ctx.Err(); err != nil {
			return zero, apierr.Parse(err)
		}
		delay = time.Duration(float64(delay) * opts.BackoffMultiplier)
	}
}
