package checkout

// ShippingMethod selects one of the fixed shipping tiers.
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

const (
	freeShippingThreshold = 100.0
	taxRate               = 0.10
)

// Totals is the price breakdown for one checkout attempt.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func shippingRate(method ShippingMethod) float64 {
	switch method {
	case ShippingExpress:
		return 14.99
	case ShippingOvernight:
		return 24.99
	default:
		return 5.99
	}
}

// ComputeTotals applies the pricing rules: shipping is free above the
// threshold, tax is 10% of the discounted subtotal, and the taxable base
// never goes below zero when the discount exceeds the subtotal.
func ComputeTotals(subtotal float64, method ShippingMethod, discount float64) Totals {
	shipping := shippingRate(method)
	if subtotal > freeShippingThreshold {
		shipping = 0
	}

	taxable := subtotal - discount
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * taxRate

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + shipping + tax - discount,
	}
}
