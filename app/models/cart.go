package models

import "gorm.io/gorm"

// CartItem is one line of a user's cart. Uniqueness over
// (user, product, variation) makes "add" an upsert: adding the same
// variation twice replaces quantity and options instead of duplicating
// the row. Carts never expire.
type CartItem struct {
	gorm.Model
	UserID      uint   `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"user_id"`
	ProductID   uint   `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"product_id"`
	VariationID int64  `gorm:"not null;default:0;uniqueIndex:idx_cart_owner_product" json:"variation_id"`
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`
	Options     string `gorm:"type:text"          json:"options"` // raw JSON chosen by the frontend
}
