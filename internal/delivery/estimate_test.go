package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/pricing"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 30, 0, 0, time.UTC)
}

func TestEstimateSkipsWeekends(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"monday", day(2024, time.March, 4), day(2024, time.March, 8)},
		{"wednesday", day(2024, time.March, 6), day(2024, time.March, 12)},
		{"friday", day(2024, time.March, 8), day(2024, time.March, 14)},
		{"saturday", day(2024, time.March, 9), day(2024, time.March, 14)},
		{"sunday", day(2024, time.March, 10), day(2024, time.March, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.from, 4)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, time.Saturday, got.Weekday())
			assert.NotEqual(t, time.Sunday, got.Weekday())
		})
	}
}

func TestEstimateZeroDaysReturnsStart(t *testing.T) {
	from := day(2024, time.March, 9)
	assert.Equal(t, from, Estimate(from, 0))
}

func TestFromNowAndForOrderUseTheirOwnBase(t *testing.T) {
	policy := pricing.DefaultPolicy()
	now := day(2024, time.March, 8)
	order := models.Order{CreatedAt: day(2024, time.March, 4)}

	assert.Equal(t, day(2024, time.March, 14), FromNow(now, policy))
	assert.Equal(t, day(2024, time.March, 8), ForOrder(order, policy))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Thursday, March 14, 2024", Format(day(2024, time.March, 14)))
}
