package property_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"property-catalog/internal/contextkeys"
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/domain"
	"property-catalog/internal/core/port"
)

const (
	propertiesPath  = "/properties"
	categoriesPath  = "/categories"
	uploadImagePath = "/upload/image"
)

func propertyPath(id string) string {
	return propertiesPath + "/" + url.PathEscape(id)
}

// GetProperties возвращает список объектов по фильтру. Повторяется при временных сбоях.
func (c *Client) GetProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "GetProperties")

	r := apiRequest{
		operation: "get_properties",
		method:    http.MethodGet,
		path:      propertiesPath,
		query:     BuildPropertiesQuery(filter),
	}
	clientLogger.Debug("Sending request to property API", port.Fields{"path": r.path, "query": r.query.Encode()})

	raw, err := c.read(ctx, r, clientLogger)
	if err != nil {
		return nil, err
	}

	properties, err := decode[[]domain.Property](ctx, raw, r)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []domain.Property{}
	}

	clientLogger.Info("Successfully received properties", port.Fields{"properties_count": len(properties)})
	return properties, nil
}

// GetPropertyByID возвращает один объект. 404 приходит как APIError.
func (c *Client) GetPropertyByID(ctx context.Context, id string) (*domain.Property, error) {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "GetPropertyByID").WithFields(port.Fields{"property_id": id})

	r := apiRequest{
		operation: "get_property",
		method:    http.MethodGet,
		path:      propertyPath(id),
	}
	clientLogger.Debug("Sending request to property API", port.Fields{"path": r.path})

	raw, err := c.read(ctx, r, clientLogger)
	if err != nil {
		return nil, err
	}

	property, err := decode[domain.Property](ctx, raw, r)
	if err != nil {
		return nil, err
	}

	clientLogger.Info("Successfully received property", nil)
	return &property, nil
}

// CreateProperty создает объект. Выполняется ровно один раз.
func (c *Client) CreateProperty(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "CreateProperty")

	body, err := json.Marshal(input)
	if err != nil {
		return nil, apierr.Handle(ctx, err, port.Fields{"endpoint": propertiesPath, "method": http.MethodPost})
	}

	r := apiRequest{
		operation:   "create_property",
		method:      http.MethodPost,
		path:        propertiesPath,
		body:        body,
		contentType: "application/json",
	}
	clientLogger.Debug("Sending request to create property", port.Fields{"name": input.Name})

	raw, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	property, err := decode[domain.Property](ctx, raw, r)
	if err != nil {
		return nil, err
	}

	clientLogger.Info("Successfully created property", port.Fields{"property_id": property.ID})
	return &property, nil
}

// UpdateProperty отправляет только заданные в патче поля. Без повторов.
func (c *Client) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "UpdateProperty").WithFields(port.Fields{"property_id": id})

	r := apiRequest{
		operation:   "update_property",
		method:      http.MethodPut,
		path:        propertyPath(id),
		contentType: "application/json",
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, apierr.Handle(ctx, err, r.fields())
	}
	r.body = body

	clientLogger.Debug("Sending request to update property", nil)

	raw, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	property, err := decode[domain.Property](ctx, raw, r)
	if err != nil {
		return nil, err
	}

	clientLogger.Info("Successfully updated property", nil)
	return &property, nil
}

// DeleteProperty удаляет объект. Сервер отвечает 204 или 200.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "DeleteProperty").WithFields(port.Fields{"property_id": id})

	r := apiRequest{
		operation: "delete_property",
		method:    http.MethodDelete,
		path:      propertyPath(id),
	}
	clientLogger.Debug("Sending request to delete property", nil)

	if _, err := c.send(ctx, r); err != nil {
		return err
	}

	clientLogger.Info("Successfully deleted property", nil)
	return nil
}

// UploadImage отправляет файл multipart-запросом в поле "file".
// Content-Type с boundary выставляет multipart.Writer. Без повторов.
func (c *Client) UploadImage(ctx context.Context, fileName string, content io.Reader) (*domain.UploadedImage, error) {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "UploadImage").WithFields(port.Fields{"file_name": fileName})

	r := apiRequest{
		operation: "upload_image",
		method:    http.MethodPost,
		path:      uploadImagePath,
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, apierr.Handle(ctx, err, r.fields())
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, apierr.Handle(ctx, err, r.fields())
	}
	if err := writer.Close(); err != nil {
		return nil, apierr.Handle(ctx, err, r.fields())
	}
	r.body = buf.Bytes()
	r.contentType = writer.FormDataContentType()

	clientLogger.Debug("Sending image upload request", port.Fields{"size_bytes": buf.Len()})

	raw, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	uploaded, err := decode[domain.UploadedImage](ctx, raw, r)
	if err != nil {
		return nil, err
	}

	clientLogger.Info("Successfully uploaded image", port.Fields{"image_url": uploaded.ImageURL})
	return &uploaded, nil
}

// GetCategories возвращает справочник категорий. Повторяется при временных сбоях.
func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, _ = contextkeys.EnsureTraceID(ctx)
	clientLogger := c.logger(ctx, "GetCategories")

	r := apiRequest{
		operation: "get_categories",
		method:    http.MethodGet,
		path:      categoriesPath,
	}
	clientLogger.Debug("Sending request to property API", port.Fields{"path": r.path})

	raw, err := c.read(ctx, r, clientLogger)
	if err != nil {
		return nil, err
	}

	categories, err := decode[[]domain.Category](ctx, raw, r)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	clientLogger.Info("Successfully received categories", port.Fields{"categories_count": len(categories)})
	return categories, nil
}
