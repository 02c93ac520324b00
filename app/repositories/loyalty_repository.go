package repositories

import (
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/gorm"
)

// LoyaltyRepository handles database access for the points ledger.
type LoyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

// Ledger returns a user's ledger rows, newest first.
func (r *LoyaltyRepository) Ledger(userID uint) ([]models.LoyaltyPoint, error) {
	var rows []models.LoyaltyPoint
	err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&rows).Error
	return rows, err
}

// Sum returns the user's total accumulated points.
func (r *LoyaltyRepository) Sum(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.LoyaltyPoint{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

// Award appends one ledger row.
func (r *LoyaltyRepository) Award(row *models.LoyaltyPoint) error {
	return r.db.Create(row).Error
}

// HasBonusOn reports whether the user already has a row of the given bonus
// type within the UTC calendar day containing at.
func (r *LoyaltyRepository) HasBonusOn(userID uint, bonusType string, at time.Time) (bool, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var n int64
	err := r.db.Model(&models.LoyaltyPoint{}).
		Where("user_id = ? AND bonus_type = ? AND created_at >= ? AND created_at < ?",
			userID, bonusType, dayStart, dayEnd).
		Count(&n).Error
	return n > 0, err
}
