package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func newTestValidator() *PaymentValidator {
	v := NewPaymentValidator()
	v.nowFunc = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return v
}

func validCard() models.PaymentDetails {
	return models.PaymentDetails{
		CardNumber: "4111 1111 1111 1111",
		CardHolder: "Asha Rao",
		ExpiryDate: "09/27",
		CVV:        "123",
	}
}

func TestCardPaymentPasses(t *testing.T) {
	require.NoError(t, newTestValidator().Validate(models.PaymentCard, validCard()))
}

func TestCardNumberTooShort(t *testing.T) {
	details := validCard()
	details.CardNumber = "4111 1111 1111 111"

	fields, ok := AsFieldErrors(newTestValidator().Validate(models.PaymentCard, details))
	require.True(t, ok)
	assert.Equal(t, FieldErrors{"cardNumber": "Card number must be at least 16 digits"}, fields)
}

func TestCardMissingEverything(t *testing.T) {
	fields, ok := AsFieldErrors(newTestValidator().Validate(models.PaymentCard, models.PaymentDetails{}))
	require.True(t, ok)
	assert.Equal(t, FieldErrors{
		"cardNumber": "Card number is required",
		"cardHolder": "Cardholder name is required",
		"expiryDate": "Expiry date is required",
		"cvv":        "CVV is required",
	}, fields)
}

func TestExpiryRules(t *testing.T) {
	tests := []struct {
		expiry string
		want   string
	}{
		{"0927", "Invalid format (MM/YY)"},
		{"ab/cd", "Invalid format (MM/YY)"},
		{"13/27", "Invalid month (01-12)"},
		{"00/27", "Invalid month (01-12)"},
		{"05/25", "Card has expired"},
		{"12/24", "Card has expired"},
		{"06/25", ""},
		{"01/26", ""},
	}

	v := newTestValidator()
	for _, tt := range tests {
		details := validCard()
		details.ExpiryDate = tt.expiry
		err := v.Validate(models.PaymentCard, details)
		if tt.want == "" {
			assert.NoError(t, err, tt.expiry)
			continue
		}
		fields, ok := AsFieldErrors(err)
		require.True(t, ok, tt.expiry)
		assert.Equal(t, tt.want, fields["expiryDate"], tt.expiry)
	}
}

func TestCardNumberSeparators(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"4111111111111111", true},
		{"4111 1111 1111 1111", true},
		{"4111-1111-1111-1111", true},
		{"4111 - 1111 - 1111 - 1111", true},
		{"4111-1111-1111-111", false},
		{"4111-1111-1111-111x", false},
		{"4111.1111.1111.1111", false},
	}

	v := newTestValidator()
	for _, tt := range tests {
		details := validCard()
		details.CardNumber = tt.number
		err := v.Validate(models.PaymentCard, details)
		if tt.valid {
			assert.NoError(t, err, tt.number)
			continue
		}
		fields, ok := AsFieldErrors(err)
		require.True(t, ok, tt.number)
		assert.Equal(t, "Card number must be at least 16 digits", fields["cardNumber"], tt.number)
	}
}

func TestShortCVV(t *testing.T) {
	v := newTestValidator()
	for _, cvv := range []string{"12", "abc", "12a", "1 2"} {
		details := validCard()
		details.CVV = cvv

		fields, ok := AsFieldErrors(v.Validate(models.PaymentCard, details))
		require.True(t, ok, cvv)
		assert.Equal(t, "Please enter a valid CVV", fields["cvv"], cvv)
	}

	for _, cvv := range []string{"123", "1234"} {
		details := validCard()
		details.CVV = cvv
		assert.NoError(t, v.Validate(models.PaymentCard, details), cvv)
	}
}

func TestUPIRequiresID(t *testing.T) {
	v := newTestValidator()

	fields, ok := AsFieldErrors(v.Validate(models.PaymentUPI, models.PaymentDetails{}))
	require.True(t, ok)
	assert.Equal(t, FieldErrors{"upiId": "UPI ID is required"}, fields)

	assert.NoError(t, v.Validate(models.PaymentUPI, models.PaymentDetails{UPIID: "asha@upi"}))
}

func TestCODNeedsNothing(t *testing.T) {
	assert.NoError(t, newTestValidator().Validate(models.PaymentCOD, models.PaymentDetails{Email: "not-an-email"}))
	assert.Empty(t, Required(models.PaymentCOD))
}

func TestOptionalEmailValidatedWhenPresent(t *testing.T) {
	v := newTestValidator()
	details := models.PaymentDetails{UPIID: "asha@upi", Email: "asha@"}

	fields, ok := AsFieldErrors(v.Validate(models.PaymentUPI, details))
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid email address", fields["email"])

	details.Email = "asha@example.com"
	details.ConfirmEmail = "asha@example.org"
	fields, ok = AsFieldErrors(v.Validate(models.PaymentUPI, details))
	require.True(t, ok)
	assert.Equal(t, FieldErrors{"confirmEmail": "Emails do not match"}, fields)

	details.ConfirmEmail = details.Email
	assert.NoError(t, v.Validate(models.PaymentUPI, details))
}

func TestUnknownMethod(t *testing.T) {
	fields, ok := AsFieldErrors(newTestValidator().Validate("paypal", models.PaymentDetails{}))
	require.True(t, ok)
	assert.Contains(t, fields, "paymentMethod")
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t, []string{"cardNumber", "cardHolder", "expiryDate", "cvv"}, Required(models.PaymentCard))
	assert.Equal(t, []string{"upiId"}, Required(models.PaymentUPI))
}

func TestPaymentDetailsNeverPrinted(t *testing.T) {
	details := validCard()
	assert.NotContains(t, details.String(), "4111")
}
