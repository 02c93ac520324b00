package repositories

import (
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository handles database access for cart lines.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// ForUser returns the user's cart lines, oldest first.
func (r *CartRepository) ForUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&items).Error
	return items, err
}

// Upsert adds a line or, when (user, product, variation) already exists,
// replaces its quantity and options with the incoming values.
func (r *CartRepository) Upsert(item *models.CartItem) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "product_id"}, {Name: "variation_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "options", "updated_at"}),
	}).Create(item).Error
}

// UpdateFields mutates one owned line.
func (r *CartRepository) UpdateFields(id, userID uint, fields map[string]interface{}) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes one owned line.
func (r *CartRepository) Delete(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
