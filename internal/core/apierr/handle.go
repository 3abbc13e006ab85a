package apierr

import (
	"context"
	"property-catalog/internal/contextkeys"
	"property-catalog/internal/core/port"
)

// Handle нормализует ошибку и пишет ее в лог из контекста.
// Результат всегда совпадает с Parse(raw).
func Handle(ctx context.Context, raw any, fields port.Fields) *APIError {
	apiErr := Parse(raw)

	func() {
		// паника в адаптере логгера не должна менять результат
		defer func() { _ = recover() }()

		logFields := port.Fields{"status_code": apiErr.StatusCode}
		for k, v := range fields {
			logFields[k] = v
		}
		if len(apiErr.Errors) > 0 {
			logFields["field_errors"] = apiErr.Errors
		}
		contextkeys.LoggerFromContext(ctx).Error("API request failed", apiErr, logFields)
	}()

	return apiErr
}
