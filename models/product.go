package models

import "time"

// Price is stored in minor currency units (cents).
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImgPath     string    `json:"img_path"`
	Price       int64     `json:"price"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductPage is one page of a product listing together with the total
// match count. This is the unit stored under a product-list cache key.
type ProductPage struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
}
