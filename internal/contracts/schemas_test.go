package contracts

import (
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() domain.PropertyInput {
	return domain.PropertyInput{
		Name:            "Casa Azul",
		Description:     "Three bedrooms",
		AddressProperty: "Calle 10 #20-30",
		Type:            "House",
		PriceProperty:   250000,
		ImageURL:        "https://cdn.example.com/casa.jpg",
		Active:          true,
	}
}

func TestValidatePropertyInputAcceptsValid(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	assert.NoError(t, v.ValidatePropertyInput(validInput()))

	noImage := validInput()
	noImage.ImageURL = ""
	assert.NoError(t, v.ValidatePropertyInput(noImage))
}

func TestValidatePropertyInputReportsFields(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	input := validInput()
	input.Name = ""
	input.PriceProperty = -5
	input.ImageURL = "not a uri"

	err = v.ValidatePropertyInput(input)
	require.Error(t, err)

	apiErr := apierr.Parse(err)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, ValidationFailedMessage, apiErr.Message)
	assert.NotEmpty(t, apiErr.FieldErrors("name"))
	assert.NotEmpty(t, apiErr.FieldErrors("priceProperty"))
	assert.NotEmpty(t, apiErr.FieldErrors("imageUrl"))
	assert.Empty(t, apiErr.FieldErrors("addressProperty"))
}
