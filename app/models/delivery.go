package models

import "gorm.io/gorm"

// Delivery batch statuses. "validated" is terminal: once the external order
// exists there is no further transition.
const (
	BatchPending   = "pending"
	BatchValidated = "validated"
)

// DeliveryBatch groups pending order lines for one user. Validation creates
// the order in the external catalog and stores the returned order id.
type DeliveryBatch struct {
	gorm.Model
	UserID       uint    `gorm:"not null;index"              json:"user_id"`
	Status       string  `gorm:"size:50;default:pending"     json:"status"`
	FirstName    string  `gorm:"size:100"                    json:"first_name"`
	LastName     string  `gorm:"size:100"                    json:"last_name"`
	Address      string  `gorm:"size:255"                    json:"address"`
	City         string  `gorm:"size:100"                    json:"city"`
	PostalCode   string  `gorm:"size:20"                     json:"postal_code"`
	Country      string  `gorm:"size:2;default:FR"           json:"country"`
	Email        string  `gorm:"size:255"                    json:"email"`
	Phone        string  `gorm:"size:30"                     json:"phone"`
	ShippingCost float64 `gorm:"not null;default:0"          json:"shipping_cost"`
	WooOrderID   int64   `gorm:"default:0"                   json:"woo_order_id"`

	Items []DeliveryItem `gorm:"foreignKey:BatchID" json:"items"`
}

// DeliveryItem is one order line inside a batch.
type DeliveryItem struct {
	gorm.Model
	BatchID      uint    `gorm:"not null;index"     json:"batch_id"`
	ProductID    uint    `gorm:"not null"           json:"product_id"`
	WooProductID int64   `gorm:"not null"           json:"woo_product_id"`
	Name         string  `gorm:"size:255"           json:"name"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice    float64 `gorm:"not null;default:0" json:"unit_price"`
}
