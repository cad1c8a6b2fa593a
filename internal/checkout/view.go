package checkout

import (
	"time"

	"storefront/internal/delivery"
	"storefront/internal/models"
	"storefront/internal/pricing"
	"storefront/internal/validation"
)

// View is a read-only projection of a session for rendering.
type View struct {
	State             State                  `json:"state"`
	Cart              models.CartSnapshot    `json:"cart"`
	Totals            pricing.Totals         `json:"totals"`
	Display           map[string]string      `json:"display"`
	Addresses         []models.Address       `json:"addresses"`
	SelectedAddressID int64                  `json:"selectedAddressId,omitempty"`
	PaymentMethod     models.PaymentMethod   `json:"paymentMethod,omitempty"`
	RequiredFields    []string               `json:"requiredFields"`
	FieldErrors       validation.FieldErrors `json:"fieldErrors,omitempty"`
	Message           string                 `json:"message,omitempty"`
	EstimatedDelivery time.Time              `json:"estimatedDelivery,omitempty"`
	DeliveryText      string                 `json:"deliveryText,omitempty"`
	Order             *models.Order          `json:"order,omitempty"`
	Completed         *models.CompletedOrder `json:"completed,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := make([]models.Address, len(s.addresses))
	copy(addresses, s.addresses)
	fields := make(validation.FieldErrors, len(s.fieldErrors))
	for field, message := range s.fieldErrors {
		fields[field] = message
	}

	view := View{
		State:             s.state,
		Cart:              s.cart.Clone(),
		Totals:            s.totals,
		Display:           s.totals.Display(),
		Addresses:         addresses,
		SelectedAddressID: s.selectedAddress,
		PaymentMethod:     s.method,
		RequiredFields:    validation.Required(s.method),
		FieldErrors:       fields,
		Message:           s.message,
		EstimatedDelivery: s.estimate,
		Order:             s.order,
		Completed:         s.completed,
	}
	if !s.estimate.IsZero() {
		view.DeliveryText = delivery.Format(s.estimate)
	}
	return view
}
