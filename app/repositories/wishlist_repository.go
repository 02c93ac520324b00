package repositories

import (
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/gorm"
)

// WishlistRepository handles database access for wishlist rows.
type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) forOwner(userID uint, sessionID string) *gorm.DB {
	if userID > 0 {
		return r.db.Where("user_id = ?", userID)
	}
	return r.db.Where("session_id = ?", sessionID)
}

// ForOwner returns the owner's wishlist. The owner is a user id when
// authenticated, otherwise the anonymous session id.
func (r *WishlistRepository) ForOwner(userID uint, sessionID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.forOwner(userID, sessionID).Order("id asc").Find(&items).Error
	return items, err
}

// Add inserts a wishlist row unless the owner already has the product.
func (r *WishlistRepository) Add(item *models.WishlistItem) error {
	var existing models.WishlistItem
	err := r.forOwner(item.UserID, item.SessionID).
		Where("product_id = ?", item.ProductID).
		First(&existing).Error
	if err == nil {
		*item = existing // already present, keep the original row
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(item).Error
}

// Remove deletes one product from the owner's wishlist. The delete is
// unscoped so the unique owner+product index never holds a retired row
// against a later re-add.
func (r *WishlistRepository) Remove(userID uint, sessionID string, productID uint) error {
	return r.forOwner(userID, sessionID).
		Where("product_id = ?", productID).
		Unscoped().
		Delete(&models.WishlistItem{}).Error
}

// Migrate reassigns every session-scoped row to the user and clears the
// session id, so the wishlist follows the visitor through login. Session
// rows for products the user already wishes are dropped instead of
// reassigned, keeping the owner+product uniqueness intact.
func (r *WishlistRepository) Migrate(sessionID string, userID uint) (int64, error) {
	var migrated int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.WishlistItem{}).
			Select("product_id").
			Where("user_id = ?", userID)
		if err := tx.Unscoped().
			Where("session_id = ? AND product_id IN (?)", sessionID, owned).
			Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.WishlistItem{}).
			Where("session_id = ?", sessionID).
			Updates(map[string]interface{}{"user_id": userID, "session_id": ""})
		migrated = res.RowsAffected
		return res.Error
	})
	return migrated, err
}
