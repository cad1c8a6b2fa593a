package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

var (
	DefaultTaxRate              = decimal.RequireFromString("0.08")
	DefaultDeliveryBusinessDays = 4
)

// Policy owns the store-wide pricing and delivery constants.
type Policy struct {
	TaxRate              decimal.Decimal
	DeliveryBusinessDays int
}

func DefaultPolicy() Policy {
	return Policy{TaxRate: DefaultTaxRate, DeliveryBusinessDays: DefaultDeliveryBusinessDays}
}

// Totals keeps full precision; use Rounded for display.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Tax:      t.Tax.Round(2),
		Total:    t.Total.Round(2),
	}
}

// Display formats each amount with exactly two decimals.
func (t Totals) Display() map[string]string {
	return map[string]string{
		"subtotal": t.Subtotal.StringFixed(2),
		"tax":      t.Tax.StringFixed(2),
		"total":    t.Total.StringFixed(2),
	}
}

func isOnSale(salePrice decimal.NullDecimal) bool {
	return salePrice.Valid && salePrice.Decimal.IsPositive()
}

// EffectiveUnitPrice prefers the sale price when present and positive.
func EffectiveUnitPrice(price decimal.Decimal, salePrice decimal.NullDecimal) decimal.Decimal {
	if isOnSale(salePrice) {
		return salePrice.Decimal
	}
	return price
}

func LineTotal(price decimal.Decimal, salePrice decimal.NullDecimal, quantity int) decimal.Decimal {
	return EffectiveUnitPrice(price, salePrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// Calculate derives subtotal, tax and total from the cart items. It never
// uses the server-reported cart total.
func (p Policy) Calculate(snapshot models.CartSnapshot) Totals {
	subtotal := decimal.Zero
	for _, item := range snapshot.Items {
		subtotal = subtotal.Add(LineTotal(item.Product.Price, item.Product.SalePrice, item.Quantity))
	}
	tax := subtotal.Mul(p.TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Calculate applies the default policy.
func Calculate(snapshot models.CartSnapshot) Totals {
	return DefaultPolicy().Calculate(snapshot)
}
