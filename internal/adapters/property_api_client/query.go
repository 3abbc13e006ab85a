package property_api_client

import (
	"net/url"
	"property-catalog/internal/core/domain"
	"strconv"
)

// BuildPropertiesQuery сериализует заданные поля фильтра в query string.
// nil-поля не отправляются.
func BuildPropertiesQuery(filter domain.PropertyFilter) url.Values {
	q := url.Values{}
	if filter.Name != nil {
		q.Set("name", *filter.Name)
	}
	if filter.Address != nil {
		q.Set("address", *filter.Address)
	}
	if filter.PriceMin != nil {
		q.Set("priceMin", strconv.FormatFloat(*filter.PriceMin, 'f', -1, 64))
	}
	if filter.PriceMax != nil {
		q.Set("priceMax", strconv.FormatFloat(*filter.PriceMax, 'f', -1, 64))
	}
	if filter.Type != nil {
		q.Set("type", *filter.Type)
	}
	if filter.Active != nil {
		q.Set("active", strconv.FormatBool(*filter.Active))
	}
	return q
}
