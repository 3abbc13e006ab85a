package domain

// Property - объект недвижимости в каталоге.
// ID и CreatedAt назначает только сервер.
type Property struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	AddressProperty string    `json:"addressProperty"`
	Type            string    `json:"type"`
	PriceProperty   float64   `json:"priceProperty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       Timestamp `json:"createdAt"`
	IDOwner         string    `json:"idOwner,omitempty"`
}

// PropertyInput - тело запроса на создание объекта.
type PropertyInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	AddressProperty string  `json:"addressProperty"`
	Type            string  `json:"type"`
	PriceProperty   float64 `json:"priceProperty"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	Active          bool    `json:"active"`
	IDOwner         string  `json:"idOwner,omitempty"`
}

// PropertyPatch - частичное обновление: отправляются только заданные поля.
type PropertyPatch struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	AddressProperty *string  `json:"addressProperty,omitempty"`
	Type            *string  `json:"type,omitempty"`
	PriceProperty   *float64 `json:"priceProperty,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	IDOwner         *string  `json:"idOwner,omitempty"`
}

// IsEmpty сообщает, что в патче нет ни одного поля.
func (p PropertyPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.AddressProperty == nil &&
		p.Type == nil && p.PriceProperty == nil && p.ImageURL == nil &&
		p.Active == nil && p.IDOwner == nil
}

// Category - справочник типов объектов. Только для чтения.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UploadedImage - ответ сервера на загрузку изображения.
type UploadedImage struct {
	ImageURL string `json:"imageUrl"`
	FileName string `json:"fileName"`
}
