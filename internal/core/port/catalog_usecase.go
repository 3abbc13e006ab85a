package port

import (
	"context"
	"io"
	"property-catalog/internal/core/domain"
)

// CatalogUseCase - операции каталога, доступные внешним адаптерам (REST, CLI).
type CatalogUseCase interface {
	Snapshot() domain.CatalogState
	SetFilter(filter domain.PropertyFilter)
	ResetFilter()
	Refresh(ctx context.Context)
	View(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, input domain.PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, fileName string, content io.Reader) (*domain.UploadedImage, error)
}
