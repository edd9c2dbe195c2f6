package models

import "time"

// Order is immutable once created. TotalSum is computed at purchase time
// from the price snapshots and never recomputed from current product prices.
type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	UserID      int64       `json:"user_id"`
	TotalSum    int64       `json:"total_sum"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderItem snapshots the product price at purchase time. Title,
// Description and ImgPath are display decorations re-joined from the
// catalog on read; PriceAtPurchase stays authoritative for money math.
type OrderItem struct {
	ID              int64  `json:"id"`
	OrderID         int64  `json:"order_id"`
	ProductID       int64  `json:"product_id"`
	Quantity        int64  `json:"quantity"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	ImgPath         string `json:"img_path,omitempty"`
}
