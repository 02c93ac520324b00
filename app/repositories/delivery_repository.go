package repositories

import (
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/gorm"
)

// DeliveryRepository handles database access for delivery batches.
type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// ForUser returns the user's batches with their lines, newest first.
func (r *DeliveryRepository) ForUser(userID uint) ([]models.DeliveryBatch, error) {
	var batches []models.DeliveryBatch
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&batches).Error
	return batches, err
}

// FindOwned loads one batch with its lines, scoped to the owner.
func (r *DeliveryRepository) FindOwned(id, userID uint) (models.DeliveryBatch, error) {
	var batch models.DeliveryBatch
	err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&batch).Error
	return batch, err
}

// Create persists a batch and its lines.
func (r *DeliveryRepository) Create(batch *models.DeliveryBatch) error {
	return r.db.Create(batch).Error
}

// MarkValidated records the external order id and moves the batch to its
// terminal status.
func (r *DeliveryRepository) MarkValidated(id uint, wooOrderID int64) error {
	return r.db.Model(&models.DeliveryBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.BatchValidated,
			"woo_order_id": wooOrderID,
		}).Error
}
