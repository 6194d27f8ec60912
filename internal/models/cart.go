package models

// CartItem is one line of a user's cart: a product and the quantity the user
// wants. A user has at most one line per product; repeat adds merge into it.
type CartItem struct {
	UserID    string `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CartLine is a cart item joined with the live product row, as needed for
// display, pricing and stock validation.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unit_price"` // paise
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"` // available stock at snapshot time
}

// WishlistItem marks a product a user has saved for later.
type WishlistItem struct {
	UserID    string `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
}
