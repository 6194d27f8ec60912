package services

// PriceLine is the pricing input for one cart line. UnitPrice is in paise.
type PriceLine struct {
	UnitPrice int64
	Quantity  int
}

// PricingResult holds the computed amounts for a cart. All amounts are in
// paise.
type PricingResult struct {
	Subtotal        int64 `json:"subtotal"`
	DiscountPercent int   `json:"discount_percent"`
	DiscountAmount  int64 `json:"discount_amount"`
	FinalPrice      int64 `json:"final_price"`
}

// Discount tier boundaries on the subtotal, in paise.
const (
	tierOneLimit   = 50000  // below ₹500: no discount
	tierTwoLimit   = 100000 // below ₹1000: 5%
	tierThreeLimit = 200000 // below ₹2000: 10%, otherwise 15%
)

// PriceCart computes subtotal, tier discount and final price for a cart
// snapshot. It is a pure function: no side effects, and integer paise
// arithmetic keeps the result independent of summation order. An empty input
// prices to zero; rejecting empty carts is the checkout's responsibility.
func PriceCart(lines []PriceLine) PricingResult {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}

	result := PricingResult{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent(subtotal),
	}
	result.DiscountAmount = subtotal * int64(result.DiscountPercent) / 100
	result.FinalPrice = subtotal - result.DiscountAmount
	return result
}

func discountPercent(subtotal int64) int {
	switch {
	case subtotal < tierOneLimit:
		return 0
	case subtotal < tierTwoLimit:
		return 5
	case subtotal < tierThreeLimit:
		return 10
	default:
		return 15
	}
}
