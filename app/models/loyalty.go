package models

import "gorm.io/gorm"

// Loyalty bonus types recorded in the ledger.
const (
	BonusDaily    = "daily"
	BonusPurchase = "purchase"
	BonusManual   = "manual"
)

// LoyaltyPoint is one ledger row. The member's tier is never stored: it is
// derived on every read by summing the ledger and applying the threshold
// ladder (see services.LoyaltyService).
type LoyaltyPoint struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"    json:"user_id"`
	Points      int    `gorm:"not null"          json:"points"`
	BonusType   string `gorm:"size:50;not null"  json:"bonus_type"`
	Description string `gorm:"size:255"          json:"description"`
}
