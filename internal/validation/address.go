package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
)

type AddressValidator struct {
	validate *validator.Validate
}

func NewAddressValidator() *AddressValidator {
	return &AddressValidator{validate: newValidate()}
}

// Validate trims the input in place and checks the required fields.
func (v *AddressValidator) Validate(input *models.AddressInput) error {
	input.AddressType = strings.ToLower(strings.TrimSpace(input.AddressType))
	if input.AddressType == "" {
		input.AddressType = models.AddressHome
	}
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.AddressLine1 = strings.TrimSpace(input.AddressLine1)
	input.AddressLine2 = strings.TrimSpace(input.AddressLine2)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.ZipCode = strings.TrimSpace(input.ZipCode)
	input.Country = strings.TrimSpace(input.Country)

	if err := v.validate.Struct(input); err != nil {
		return structErrors(err)
	}
	return nil
}
