package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/domain"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const propertyInputSchema = "schemas/property-input.json"

// ValidationFailedMessage - сообщение для ошибок клиентской валидации.
const ValidationFailedMessage = "Validation failed"

// SchemaValidator проверяет формы по встроенным JSON-схемам.
type SchemaValidator struct {
	propertyInput *jsonschema.Schema
}

// NewSchemaValidator компилирует встроенные схемы.
func NewSchemaValidator() (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	data, err := schemasFS.ReadFile(propertyInputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", propertyInputSchema, err)
	}
	if err := compiler.AddResource(propertyInputSchema, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", propertyInputSchema, err)
	}
	schema, err := compiler.Compile(propertyInputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", propertyInputSchema, err)
	}
	return &SchemaValidator{propertyInput: schema}, nil
}

// ValidatePropertyInput возвращает nil или *apierr.APIError с кодом 422 и ошибками по полям.
func (v *SchemaValidator) ValidatePropertyInput(input domain.PropertyInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return apierr.Parse(err)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return apierr.Parse(err)
	}

	if err := v.propertyInput.Validate(doc); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return apierr.Parse(err)
		}
		apiErr := apierr.New(422, ValidationFailedMessage)
		apiErr.Errors = fieldErrors(validationErr)
		return apiErr
	}
	return nil
}

// fieldErrors собирает листовые ошибки схемы в карту поле -> сообщения.
func fieldErrors(root *jsonschema.ValidationError) map[string][]string {
	result := make(map[string][]string)
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			field := strings.TrimPrefix(e.InstanceLocation, "/")
			if field == "" {
				field = "input"
			}
			result[field] = append(result[field], e.Message)
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(root)

	for field := range result {
		sort.Strings(result[field])
	}
	return result
}
