package domain

// CatalogState - снимок состояния каталога для отображения.
type CatalogState struct {
	Properties   []Property     `json:"properties"`
	Categories   []Category     `json:"categories"`
	Filter       PropertyFilter `json:"filter"`
	IsLoading    bool           `json:"isLoading"`
	IsSubmitting bool           `json:"isSubmitting"`
	Selected     *Property      `json:"selected,omitempty"`
}
