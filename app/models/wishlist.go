package models

import "gorm.io/gorm"

// WishlistItem is owned by either an authenticated user (UserID > 0) or an
// anonymous browser session (SessionID set), never both. On login the
// migrate operation reassigns session rows to the user and clears their
// session id.
//
// The composite index enforces one row per owner and product: user rows
// carry an empty session id, anonymous rows a zero user id, so the triple
// is unique exactly when the owner+product pair is. Removals are hard
// deletes so a re-added product does not collide with a retired row.
type WishlistItem struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex:uniq_wishlist_owner_product"                json:"user_id"`
	SessionID string `gorm:"size:64;index;uniqueIndex:uniq_wishlist_owner_product"  json:"session_id"`
	ProductID uint   `gorm:"not null;uniqueIndex:uniq_wishlist_owner_product"       json:"product_id"`
}
