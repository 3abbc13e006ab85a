package port

import (
	"context"
	"io"
	"property-catalog/internal/core/domain"
)

// PropertyAPIPort - контракт клиента удаленного REST API каталога.
// Все ошибки возвращаются как *apierr.APIError.
type PropertyAPIPort interface {
	GetProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	GetPropertyByID(ctx context.Context, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, input domain.PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	UploadImage(ctx context.Context, fileName string, content io.Reader) (*domain.UploadedImage, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
}
