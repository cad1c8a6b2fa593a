package delivery

import (
	"time"

	"storefront/internal/models"
	"storefront/internal/pricing"
)

// Estimate walks forward from the given day, counting only Monday through
// Friday, and returns the date reached after businessDays of them. The time
// of day and location of from are preserved.
func Estimate(from time.Time, businessDays int) time.Time {
	date := from
	for added := 0; added < businessDays; {
		date = date.AddDate(0, 0, 1)
		if isBusinessDay(date) {
			added++
		}
	}
	return date
}

func isBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// FromNow is the pre-purchase preview shown with the cart and checkout.
func FromNow(now time.Time, policy pricing.Policy) time.Time {
	return Estimate(now, policy.DeliveryBusinessDays)
}

// ForOrder anchors the estimate on the order creation time. It can differ
// from the preview shown before purchase.
func ForOrder(order models.Order, policy pricing.Policy) time.Time {
	return Estimate(order.CreatedAt, policy.DeliveryBusinessDays)
}

// Format renders the date the way the storefront shows it.
func Format(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
