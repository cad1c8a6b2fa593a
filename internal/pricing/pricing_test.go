package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
)

func item(price, sale string, quantity int) models.CartItem {
	product := models.Product{Price: decimal.RequireFromString(price)}
	if sale != "" {
		product.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString(sale))
	}
	return models.CartItem{Product: product, Quantity: quantity}
}

func TestCalculateUsesSalePrice(t *testing.T) {
	snapshot := models.CartSnapshot{Items: []models.CartItem{
		item("999", "899", 2),
		item("1299", "", 1),
	}}

	totals := Calculate(snapshot)

	assert.Equal(t, "3097.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "247.76", totals.Tax.StringFixed(2))
	assert.Equal(t, "3344.76", totals.Total.StringFixed(2))
}

func TestCalculateIgnoresZeroSalePrice(t *testing.T) {
	snapshot := models.CartSnapshot{Items: []models.CartItem{item("100", "0", 1)}}

	totals := Calculate(snapshot)

	assert.Equal(t, "100.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "8.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "108.00", totals.Total.StringFixed(2))
}

func TestCalculateIsDeterministic(t *testing.T) {
	snapshot := models.CartSnapshot{Items: []models.CartItem{
		item("1299", "", 1),
		item("899", "", 2),
		item("999", "749.50", 3),
	}}
	before := snapshot.Clone()

	first := Calculate(snapshot)
	second := Calculate(snapshot)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, first.Display(), second.Display())
	assert.Equal(t, before, snapshot)
}

func TestCalculateEmptyCart(t *testing.T) {
	totals := Calculate(models.CartSnapshot{})

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestTotalsKeepPrecisionUntilRounded(t *testing.T) {
	snapshot := models.CartSnapshot{Items: []models.CartItem{item("0.55", "", 1)}}

	totals := Calculate(snapshot)

	assert.Equal(t, "0.044", totals.Tax.String())
	assert.Equal(t, "0.594", totals.Total.String())
	assert.Equal(t, "0.04", totals.Rounded().Tax.String())
	assert.Equal(t, "0.59", totals.Display()["total"])
}

func TestPolicyTaxRateOverride(t *testing.T) {
	policy := Policy{TaxRate: decimal.RequireFromString("0.1"), DeliveryBusinessDays: 4}
	snapshot := models.CartSnapshot{Items: []models.CartItem{item("50", "", 2)}}

	totals := policy.Calculate(snapshot)

	assert.Equal(t, "10", totals.Tax.String())
	assert.Equal(t, "110", totals.Total.String())
}

func TestEffectiveUnitPrice(t *testing.T) {
	price := decimal.NewFromInt(100)
	if got := EffectiveUnitPrice(price, decimal.NewNullDecimal(decimal.NewFromInt(75))); !got.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected sale price 75, got %v", got)
	}
	if got := EffectiveUnitPrice(price, decimal.NullDecimal{}); !got.Equal(price) {
		t.Fatalf("expected regular price 100 when no sale price, got %v", got)
	}
}
