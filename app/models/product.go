package models

import "gorm.io/gorm"

// Product is the locally cached mirror of a WooCommerce product. Rows are
// written by the admin CRUD routes and by catalog syncs; is_active
// soft-distinguishes retired products from live ones.
type Product struct {
	gorm.Model
	WooID         int64      `gorm:"uniqueIndex;not null"       json:"woo_id"`
	Name          string     `gorm:"size:255;not null;index"    json:"name"`
	Slug          string     `gorm:"size:255;index"             json:"slug"`
	Description   string     `gorm:"type:text"                  json:"description"`
	Price         float64    `gorm:"not null;default:0"         json:"price"`
	RegularPrice  float64    `gorm:"not null;default:0"         json:"regular_price"`
	SalePrice     float64    `gorm:"not null;default:0"         json:"sale_price"`
	StockQuantity int        `gorm:"not null;default:0"         json:"stock_quantity"`
	StockStatus   string     `gorm:"size:50;default:instock"    json:"stock_status"`
	CategoryIDs   Int64List  `gorm:"type:text"                  json:"category_ids"`
	Images        StringList `gorm:"type:text"                  json:"images"`
	IsActive      bool       `gorm:"default:true;index"         json:"is_active"`
	IsFeatured    bool       `gorm:"default:false"              json:"is_featured"`
}

// Category is the locally cached mirror of a WooCommerce category.
// The whole table is replaced on each sync: delete-all then upsert.
type Category struct {
	gorm.Model
	WooID        int64  `gorm:"uniqueIndex;not null" json:"woo_id"`
	Name         string `gorm:"size:255;not null"    json:"name"`
	Slug         string `gorm:"size:255"             json:"slug"`
	ParentID     int64  `gorm:"not null;default:0"   json:"parent_id"` // 0 = root
	ProductCount int    `gorm:"not null;default:0"   json:"product_count"`
}
