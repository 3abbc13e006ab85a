package usecase

import (
	"context"
	"io"
	"property-catalog/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockPropertyAPI struct {
	mock.Mock
}

func (m *MockPropertyAPI) GetProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyAPI) GetPropertyByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyAPI) CreateProperty(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyAPI) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyAPI) DeleteProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyAPI) UploadImage(ctx context.Context, fileName string, content io.Reader) (*domain.UploadedImage, error) {
	args := m.Called(ctx, fileName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedImage), args.Error(1)
}

func (m *MockPropertyAPI) GetCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidatePropertyInput(input domain.PropertyInput) error {
	args := m.Called(input)
	return args.Error(0)
}
