package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
)

type fieldRule struct {
	field string
	tags  string
	value func(models.PaymentDetails) string
	// compared against value by eqcsfield rules
	other func(models.PaymentDetails) string
	// validated only when the value is non-empty
	optional bool
}

var (
	cardNumberRule = fieldRule{field: "cardNumber", tags: "required,card_number", value: func(d models.PaymentDetails) string { return d.CardNumber }}
	cardHolderRule = fieldRule{field: "cardHolder", tags: "required", value: func(d models.PaymentDetails) string { return strings.TrimSpace(d.CardHolder) }}
	expiryRule     = fieldRule{field: "expiryDate", tags: "required,expiry_format,expiry_month,expiry_future", value: func(d models.PaymentDetails) string { return d.ExpiryDate }}
	cvvRule        = fieldRule{field: "cvv", tags: "required,cvv", value: func(d models.PaymentDetails) string { return d.CVV }}
	upiRule        = fieldRule{field: "upiId", tags: "required", value: func(d models.PaymentDetails) string { return strings.TrimSpace(d.UPIID) }}
	emailRule      = fieldRule{field: "email", tags: "contact_email", value: func(d models.PaymentDetails) string { return d.Email }, optional: true}
	confirmRule    = fieldRule{
		field:    "confirmEmail",
		tags:     "eqcsfield",
		value:    func(d models.PaymentDetails) string { return d.ConfirmEmail },
		other:    func(d models.PaymentDetails) string { return d.Email },
		optional: true,
	}
)

// paymentRules is the single table of required fields per payment method.
var paymentRules = map[models.PaymentMethod][]fieldRule{
	models.PaymentCard: {cardNumberRule, cardHolderRule, expiryRule, cvvRule, emailRule, confirmRule},
	models.PaymentUPI:  {upiRule, emailRule, confirmRule},
	models.PaymentCOD:  {},
}

var fieldMessages = map[string]map[string]string{
	"cardNumber": {
		"required":    "Card number is required",
		"card_number": "Card number must be at least 16 digits",
	},
	"cardHolder": {"required": "Cardholder name is required"},
	"expiryDate": {
		"required":      "Expiry date is required",
		"expiry_format": "Invalid format (MM/YY)",
		"expiry_month":  "Invalid month (01-12)",
		"expiry_future": "Card has expired",
	},
	"cvv": {
		"required": "CVV is required",
		"cvv":      "Please enter a valid CVV",
	},
	"upiId":        {"required": "UPI ID is required"},
	"email":        {"contact_email": "Please enter a valid email address"},
	"confirmEmail": {"eqcsfield": "Emails do not match"},
}

var (
	expiryPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const minCardDigits = 16

type PaymentValidator struct {
	validate *validator.Validate
	nowFunc  func() time.Time
}

func NewPaymentValidator() *PaymentValidator {
	v := &PaymentValidator{validate: newValidate(), nowFunc: time.Now}
	_ = v.validate.RegisterValidation("card_number", validateCardNumber)
	_ = v.validate.RegisterValidation("cvv", validateCVV)
	_ = v.validate.RegisterValidation("contact_email", validateEmail)
	_ = v.validate.RegisterValidation("expiry_format", validateExpiryFormat)
	_ = v.validate.RegisterValidation("expiry_month", validateExpiryMonth)
	_ = v.validate.RegisterValidation("expiry_future", v.validateExpiryFuture)
	return v
}

// Validate checks the details required by method. A nil return means the
// order may be submitted.
func (v *PaymentValidator) Validate(method models.PaymentMethod, details models.PaymentDetails) error {
	rules, ok := paymentRules[method]
	if !ok {
		return FieldErrors{"paymentMethod": "Please select a payment method"}
	}

	fields := FieldErrors{}
	for _, rule := range rules {
		value := rule.value(details)
		if rule.optional && value == "" {
			continue
		}

		var err error
		if rule.other != nil {
			err = v.validate.VarWithValue(value, rule.other(details), rule.tags)
		} else {
			err = v.validate.Var(value, rule.tags)
		}
		if err == nil {
			continue
		}
		fields[rule.field] = messageFor(rule.field, err)
	}

	if len(fields) > 0 {
		return fields
	}
	return nil
}

func messageFor(field string, err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		if message, ok := fieldMessages[field][validationErrors[0].Tag()]; ok {
			return message
		}
	}
	return field + " is invalid"
}

// Required lists the fields a method needs, for rendering the form.
func Required(method models.PaymentMethod) []string {
	var fields []string
	for _, rule := range paymentRules[method] {
		if !rule.optional {
			fields = append(fields, rule.field)
		}
	}
	return fields
}

// cardSeparators are the grouping characters people type between digits.
var cardSeparators = strings.NewReplacer(" ", "", "-", "", "\t", "")

func validateCardNumber(fl validator.FieldLevel) bool {
	digits := cardSeparators.Replace(fl.Field().String())
	return len(digits) >= minCardDigits && allDigits(digits)
}

func validateCVV(fl validator.FieldLevel) bool {
	cvv := strings.TrimSpace(fl.Field().String())
	return len(cvv) >= 3 && allDigits(cvv)
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func validateExpiryFormat(fl validator.FieldLevel) bool {
	return expiryPattern.MatchString(fl.Field().String())
}

func validateExpiryMonth(fl validator.FieldLevel) bool {
	month, _ := parseExpiry(fl.Field().String())
	return month >= 1 && month <= 12
}

func (v *PaymentValidator) validateExpiryFuture(fl validator.FieldLevel) bool {
	month, year := parseExpiry(fl.Field().String())
	now := v.nowFunc()
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear {
		return false
	}
	return !(year == currentYear && month < currentMonth)
}

func parseExpiry(value string) (month, year int) {
	match := expiryPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, 0
	}
	month, _ = strconv.Atoi(match[1])
	year, _ = strconv.Atoi(match[2])
	return month, year
}
