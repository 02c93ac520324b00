package repositories

import (
	"errors"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRepository handles database access for user role assignments.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// RoleFor returns the stored role for a user. Users without a row get the
// default "user" role.
func (r *RoleRepository) RoleFor(userID uint) (string, error) {
	var row models.UserRole
	err := r.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "user", nil
	}
	if err != nil {
		return "", err
	}
	return row.Role, nil
}

// Assign sets a user's role, replacing any existing assignment.
func (r *RoleRepository) Assign(userID uint, role string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&models.UserRole{UserID: userID, Role: role}).Error
}
