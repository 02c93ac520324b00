package repositories

import (
	"github.com/samber/lo"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/orm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository handles database access for the product cache.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns every product row. The default admin listing is unpaginated
// by contract.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("name asc").Find(&products).Error
	return products, err
}

// Paged returns one page of products ordered by name, with page metadata.
func (r *ProductRepository) Paged(page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	p, err := orm.New(r.db).Model(&models.Product{}).Order("name asc").
		GetWithPagination(&products, page, limit)
	return products, p, err
}

func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.First(&p, id).Error
	return p, err
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// UpdateFields applies a partial column map to one product.
func (r *ProductRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

// Deactivate soft-retires a product; the row stays for order history.
func (r *ProductRepository) Deactivate(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", false).Error
}

// UpsertMany writes a batch of mirrored products keyed by external id.
func (r *ProductRepository) UpsertMany(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "woo_id"}},
		UpdateAll: true,
	}).Create(&products).Error
}

// ReferencedCategoryIDs returns the distinct external category ids present
// in any product's denormalized membership array.
func (r *ProductRepository) ReferencedCategoryIDs(products []models.Product) []int64 {
	return lo.Uniq(lo.FlatMap(products, func(p models.Product, _ int) []int64 {
		return p.CategoryIDs
	}))
}
