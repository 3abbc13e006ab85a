package property_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"property-catalog/internal/contextkeys"
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/port"
	"property-catalog/internal/core/retry"
	"strconv"
	"strings"
	"time"
)

// Config - настройки клиента.
type Config struct {
	// BaseURL, например "http://localhost:5000/api".
	BaseURL string
	// HTTPClient можно подменить в тестах. По умолчанию создается новый.
	HTTPClient *http.Client
	// Timeout одного HTTP-запроса. 0 - без таймаута на уровне транспорта.
	Timeout time.Duration
	// Retry - политика повторов для операций чтения.
	Retry retry.Options
}

// Client - клиент REST API каталога объектов недвижимости.
// Создается один раз при старте приложения и передается потребителям.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      retry.Options
}

var _ port.PropertyAPIPort = (*Client)(nil)

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		retry:      cfg.Retry,
	}
}

// BaseURL возвращает адрес API, с которым работает клиент.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiRequest описывает один HTTP-вызов к API.
type apiRequest struct {
	operation   string
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func (r apiRequest) fields() port.Fields {
	return port.Fields{"endpoint": r.path, "method": r.method}
}

// doRequest выполняет одну попытку запроса.
// Для 204 возвращает nil-тело, для статусов вне 2xx - *apierr.APIError.
func (c *Client) doRequest(ctx context.Context, r apiRequest) (json.RawMessage, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(r.operation).Observe(time.Since(startTime).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(r.operation, "network_error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(r.operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}

// errorFromResponse строит APIError из ответа с кодом вне 2xx.
// Тело, которое не удалось разобрать, считается пустым объектом.
func errorFromResponse(resp *http.Response) *apierr.APIError {
	var parsed errorBody
	if bodyBytes, err := io.ReadAll(resp.Body); err == nil {
		_ = json.Unmarshal(bodyBytes, &parsed)
	}

	message := parsed.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = apierr.RequestFailedMessage
	}

	return &apierr.APIError{
		Message:    message,
		StatusCode: resp.StatusCode,
		Errors:     parsed.Errors,
	}
}

// send выполняет запрос один раз (для операций записи).
func (c *Client) send(ctx context.Context, r apiRequest) (json.RawMessage, error) {
	raw, err := c.doRequest(ctx, r)
	if err != nil {
		return nil, apierr.Handle(ctx, err, r.fields())
	}
	return raw, nil
}

// read выполняет запрос чтения под политикой повторов.
func (c *Client) read(ctx context.Context, r apiRequest, logger port.LoggerPort) (json.RawMessage, error) {
	opts := c.retry
	userHook := opts.OnRetry
	opts.OnRetry = func(attempt int, err *apierr.APIError) {
		retriesTotal.WithLabelValues(r.operation).Inc()
		logger.Warn("Transient failure, retrying request", port.Fields{
			"attempt":     attempt,
			"status_code": err.StatusCode,
			"error":       err.Message,
		})
		if userHook != nil {
			userHook(attempt, err)
		}
	}

	raw, err := retry.Do(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.doRequest(ctx, r)
	}, opts)
	if err != nil {
		return nil, apierr.Handle(ctx, err, r.fields())
	}
	return raw, nil
}

// decode разбирает успешный ответ, снимая обертку {"data": ...}.
// Пустое тело (204) дает нулевое значение T.
func decode[T any](ctx context.Context, raw json.RawMessage, r apiRequest) (T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(unwrapData(raw), &out); err != nil {
		return out, apierr.Handle(ctx, fmt.Errorf("failed to decode response: %w", err), r.fields())
	}
	return out, nil
}

func (c *Client) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyApiClient",
		"method":    method,
	})
}
