package models

import "fmt"

// BillLine is one priced line of a bill.
type BillLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // paise
	LineTotal int64  `json:"line_total"` // paise
}

// Bill is the user-facing summary of a checkout. It is derived from the
// order and returned to the caller for display; it is not persisted.
type Bill struct {
	OrderID         string     `json:"order_id"`
	Lines           []BillLine `json:"lines"`
	Subtotal        int64      `json:"subtotal"`
	DiscountPercent int        `json:"discount_percent"`
	DiscountAmount  int64      `json:"discount_amount"`
	FinalPrice      int64      `json:"final_price"`
}

// Rupees renders an amount of paise as a rupee string, e.g. 61750 → "₹617.50".
func Rupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}
