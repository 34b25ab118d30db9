package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_FreeShippingAboveThreshold(t *testing.T) {
	totals := ComputeTotals(120.00, ShippingStandard, 0)

	assert.Equal(t, 120.00, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.InDelta(t, 12.00, totals.Tax, 0.001)
	assert.InDelta(t, 132.00, totals.Total, 0.001)
}

func TestComputeTotals_StandardShippingWithDiscount(t *testing.T) {
	totals := ComputeTotals(50.00, ShippingStandard, 10.00)

	assert.Equal(t, 5.99, totals.Shipping)
	assert.InDelta(t, 4.00, totals.Tax, 0.001)
	assert.InDelta(t, 49.99, totals.Total, 0.001)
}

func TestComputeTotals_ShippingTiers(t *testing.T) {
	assert.Equal(t, 5.99, ComputeTotals(50, ShippingStandard, 0).Shipping)
	assert.Equal(t, 14.99, ComputeTotals(50, ShippingExpress, 0).Shipping)
	assert.Equal(t, 24.99, ComputeTotals(50, ShippingOvernight, 0).Shipping)
}

func TestComputeTotals_ThresholdIsExclusive(t *testing.T) {
	// Exactly at the threshold still pays for shipping.
	assert.Equal(t, 5.99, ComputeTotals(100.00, ShippingStandard, 0).Shipping)
	assert.Equal(t, 0.0, ComputeTotals(100.01, ShippingStandard, 0).Shipping)
}

func TestComputeTotals_DiscountExceedsSubtotal(t *testing.T) {
	totals := ComputeTotals(20.00, ShippingStandard, 30.00)

	// Taxable base is clamped at zero, so no tax is charged.
	assert.Equal(t, 0.0, totals.Tax)
	assert.InDelta(t, 20.00+5.99-30.00, totals.Total, 0.001)
}

func TestComputeTotals_UnknownMethodFallsBackToStandard(t *testing.T) {
	assert.Equal(t, 5.99, ComputeTotals(50, ShippingMethod("carrier-pigeon"), 0).Shipping)
}
