package domain

// PropertyFilter - критерии выборки. nil-поле не накладывает ограничений.
type PropertyFilter struct {
	Name     *string  `json:"name,omitempty"`
	Address  *string  `json:"address,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Active   *bool    `json:"active,omitempty"`
}

// IsEmpty - true, если фильтр пропускает все объекты.
func (f PropertyFilter) IsEmpty() bool {
	return f.Name == nil && f.Address == nil && f.PriceMin == nil &&
		f.PriceMax == nil && f.Type == nil && f.Active == nil
}

// Clone возвращает копию фильтра, не разделяющую указатели с оригиналом.
func (f PropertyFilter) Clone() PropertyFilter {
	return PropertyFilter{
		Name:     clonePtr(f.Name),
		Address:  clonePtr(f.Address),
		PriceMin: clonePtr(f.PriceMin),
		PriceMax: clonePtr(f.PriceMax),
		Type:     clonePtr(f.Type),
		Active:   clonePtr(f.Active),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr - хелпер для построения фильтров и патчей.
func Ptr[T any](v T) *T {
	return &v
}
