package models

import "time"

// CartItem is one pending line in a user's cart. Quantity is always >= 1;
// a line whose quantity would drop to zero is deleted instead.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
	Subtotal int64   `json:"subtotal"`
}

// CartView is what the cart page renders: decorated lines, the running
// total, and whether the user's balance covers it. Available is false when
// the balance service could not be reached.
type CartView struct {
	Items     []CartLine `json:"items"`
	Total     int64      `json:"total"`
	Empty     bool       `json:"empty"`
	CanBuy    bool       `json:"can_buy"`
	Available bool       `json:"available"`
}
