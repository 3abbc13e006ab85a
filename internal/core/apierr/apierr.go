// Package apierr приводит любые сбои к единой форме APIError.
package apierr

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

const (
	NetworkErrorMessage    = "Network error. Please check your connection."
	UnexpectedErrorMessage = "An unexpected error occurred"
	RequestFailedMessage   = "Request failed"

	// StatusNetwork - код для ошибок соединения, когда HTTP-ответа нет.
	StatusNetwork = 0
)

// APIError - каноническая ошибка, которую видит вызывающий код.
type APIError struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

func New(statusCode int, message string) *APIError {
	return &APIError{Message: message, StatusCode: statusCode}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// FieldErrors возвращает сообщения для одного поля формы.
func (e *APIError) FieldErrors(field string) []string {
	if e == nil || e.Errors == nil {
		return nil
	}
	return e.Errors[field]
}

// Parse превращает произвольное значение в *APIError. Никогда не возвращает nil.
func Parse(raw any) *APIError {
	switch v := raw.(type) {
	case *APIError:
		if v != nil {
			return v
		}
	case APIError:
		return &v
	case map[string]any:
		if apiErr, ok := fromMap(v); ok {
			return apiErr
		}
	case error:
		var apiErr *APIError
		if errors.As(v, &apiErr) && apiErr != nil {
			return apiErr
		}
		if isNetworkError(v) {
			return New(StatusNetwork, NetworkErrorMessage)
		}
		if msg := v.Error(); msg != "" {
			return New(500, msg)
		}
	}
	return New(500, UnexpectedErrorMessage)
}

// fromMap распознает уже нормализованную ошибку, пришедшую как JSON-объект.
func fromMap(m map[string]any) (*APIError, bool) {
	msg, ok := m["message"].(string)
	if !ok {
		return nil, false
	}
	var status int
	switch code := m["statusCode"].(type) {
	case float64:
		status = int(code)
	case int:
		status = code
	case int64:
		status = int(code)
	default:
		return nil, false
	}

	apiErr := New(status, msg)
	if rawErrors, ok := m["errors"].(map[string]any); ok {
		apiErr.Errors = make(map[string][]string, len(rawErrors))
		for field, list := range rawErrors {
			items, _ := list.([]any)
			for _, item := range items {
				if s, ok := item.(string); ok {
					apiErr.Errors[field] = append(apiErr.Errors[field], s)
				}
			}
		}
	}
	return apiErr, true
}

var networkMarkers = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"failed to fetch",
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range networkMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
