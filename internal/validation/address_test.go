package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestAddressValidatorTrimsAndDefaultsType(t *testing.T) {
	input := models.AddressInput{
		FullName:     "  Asha Rao ",
		Phone:        "9999999999",
		AddressLine1: "12 MG Road",
		City:         "Pune",
		State:        "MH",
		ZipCode:      "411001",
		Country:      "India",
	}

	require.NoError(t, NewAddressValidator().Validate(&input))
	assert.Equal(t, "Asha Rao", input.FullName)
	assert.Equal(t, models.AddressHome, input.AddressType)
}

func TestAddressValidatorReportsMissingFields(t *testing.T) {
	input := models.AddressInput{AddressType: "villa", FullName: "Asha"}

	fields, ok := AsFieldErrors(NewAddressValidator().Validate(&input))
	require.True(t, ok)
	assert.Equal(t, "address_type is invalid", fields["address_type"])
	assert.Equal(t, "phone is required", fields["phone"])
	assert.Equal(t, "address_line1 is required", fields["address_line1"])
	assert.Equal(t, "country is required", fields["country"])
	assert.NotContains(t, fields, "full_name")
	assert.NotContains(t, fields, "address_line2")
}
