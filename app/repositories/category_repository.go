package repositories

import (
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/orm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoriesCacheKey is the Redis key for the full category listing; the
// sync path deletes it whenever the cache table is replaced.
const CategoriesCacheKey = "categories:all"

// categoriesCacheTTL bounds staleness if an invalidation is ever lost.
const categoriesCacheTTL = 10 * time.Minute

// CategoryRepository handles database access for the category cache.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// AllOrdered returns cached categories ordered by name, optionally only
// root-level ones (parent = 0). The full listing reads through Redis; the
// root filter is served from the table directly since it shares the same
// invalidation.
func (r *CategoryRepository) AllOrdered(rootOnly bool) ([]models.Category, error) {
	var cats []models.Category
	q := orm.New(r.db).Model(&models.Category{}).Order("name asc")
	if rootOnly {
		err := q.Where("parent_id = 0").Get(&cats)
		return cats, err
	}
	err := q.Cache(CategoriesCacheKey, categoriesCacheTTL, &cats)
	return cats, err
}

// ByWooIDs returns only the categories referenced by the given external ids.
func (r *CategoryRepository) ByWooIDs(wooIDs []int64) ([]models.Category, error) {
	if len(wooIDs) == 0 {
		return nil, nil
	}

	var cats []models.Category
	err := r.db.Where("woo_id IN ?", wooIDs).Find(&cats).Error
	return cats, err
}

// ReplaceAll wipes the cache table and bulk-upserts the new set keyed by
// external id. The two steps run unwrapped: a failed upsert after a
// successful delete leaves the cache empty until the next sync, which the
// sync contract accepts.
func (r *CategoryRepository) ReplaceAll(cats []models.Category) error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.Category{}).Error; err != nil {
		return err
	}

	if len(cats) == 0 {
		return nil
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "woo_id"}},
		UpdateAll: true,
	}).Create(&cats).Error
}

// Count returns the number of cached categories.
func (r *CategoryRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Category{}).Count(&n).Error
	return n, err
}
