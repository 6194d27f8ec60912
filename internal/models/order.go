package models

import "time"

// OrderItem is a single line of an order. ProductName and UnitPrice are
// snapshots taken at checkout time, so the order stays readable even if the
// product is later renamed or deleted.
type OrderItem struct {
	ID          uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID     string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID   string `json:"product_id" gorm:"type:varchar(36)"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"` // paise, at the time of order
}

// Order represents a completed checkout. Orders are append-only: they are
// created exactly once and never updated or deleted. TotalPrice is the final
// amount charged, after the tier discount was applied.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalPrice      int64       `json:"total_price"`
	DiscountPercent int         `json:"discount_percent"`
	CreatedAt       time.Time   `json:"created_at"`
}
