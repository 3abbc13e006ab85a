package rest

import (
	"property-catalog/internal/core/domain"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type ErrorResponse struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// FilterRequest - тело PUT /catalog/filter. Пустые строки означают "без ограничения".
type FilterRequest struct {
	Name     *string  `json:"name"`
	Address  *string  `json:"address"`
	PriceMin *float64 `json:"priceMin"`
	PriceMax *float64 `json:"priceMax"`
	Type     *string  `json:"type"`
	Active   *bool    `json:"active"`
}

func (r FilterRequest) toDomain() domain.PropertyFilter {
	return domain.PropertyFilter{
		Name:     normalizeText(r.Name),
		Address:  normalizeText(r.Address),
		PriceMin: r.PriceMin,
		PriceMax: r.PriceMax,
		Type:     normalizeText(r.Type),
		Active:   r.Active,
	}
}

// normalizeText обрезает пробелы и приводит строку к NFC, чтобы одинаковый ввод
// из разных клиентов давал одинаковый запрос.
func normalizeText(v *string) *string {
	if v == nil {
		return nil
	}
	s := norm.NFC.String(strings.TrimSpace(*v))
	if s == "" {
		return nil
	}
	return &s
}

type FilterAcceptedResponse struct {
	Filter        domain.PropertyFilter `json:"filter"`
	QuietPeriodMs int64                 `json:"quietPeriodMs"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
