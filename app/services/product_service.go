package services

import (
	"fmt"
	"strconv"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"gorm.io/gorm"
)

// CatalogWriter is the slice of the catalog API the dual-write path needs.
type CatalogWriter interface {
	CreateProduct(fields map[string]interface{}) (*woo.Product, error)
	UpdateProduct(id int64, fields map[string]interface{}) error
}

// DualWriteResult reports each leg of a local+remote write separately so
// callers can decide policy instead of parsing a warning string. The local
// store is authoritative for rendering; the remote leg is best effort and
// never rolls the local write back.
type DualWriteResult struct {
	Local         error
	Remote        error
	RemoteSkipped bool // product has no external id to write to
}

// OK reports whether the authoritative local write succeeded.
func (r DualWriteResult) OK() bool { return r.Local == nil }

// Warning returns the soft-failure text exposed to the admin frontend, or
// "" when both legs succeeded.
func (r DualWriteResult) Warning() string {
	if r.Local != nil || r.Remote == nil {
		return ""
	}
	return fmt.Sprintf("local update saved, catalog update failed: %v", r.Remote)
}

// ProductService performs admin product writes against both stores.
type ProductService struct {
	repo   *repositories.ProductRepository
	client CatalogWriter
}

func NewProductService(db *gorm.DB, client CatalogWriter) *ProductService {
	return &ProductService{
		repo:   repositories.NewProductRepository(db),
		client: client,
	}
}

// Update applies a partial field map to a product: local store first, then
// the external catalog. A remote failure is reported through the result,
// not an error; there is no reconciliation beyond the next full sync.
func (s *ProductService) Update(id uint, fields map[string]interface{}) (models.Product, DualWriteResult) {
	var res DualWriteResult

	product, err := s.repo.FindByID(id)
	if err != nil {
		res.Local = err
		return models.Product{}, res
	}

	local, remote := translateProductFields(fields)

	if len(local) > 0 {
		if err := s.repo.UpdateFields(id, local); err != nil {
			res.Local = err
			return models.Product{}, res
		}
	}

	switch {
	case product.WooID == 0:
		res.RemoteSkipped = true
	case len(remote) > 0:
		if err := s.client.UpdateProduct(product.WooID, remote); err != nil {
			res.Remote = err
			logger.Warn("product: catalog write failed after local update",
				"product_id", id, "woo_id", product.WooID, "error", err)
		}
	}

	updated, err := s.repo.FindByID(id)
	if err != nil {
		// The write itself succeeded; return the pre-update row rather
		// than failing the request.
		updated = product
	}
	return updated, res
}

// Create writes a new product locally and then mirrors it to the catalog,
// attaching the returned external id when that leg succeeds.
func (s *ProductService) Create(p *models.Product) DualWriteResult {
	var res DualWriteResult

	if err := s.repo.Create(p); err != nil {
		res.Local = err
		return res
	}

	_, remote := translateProductFields(map[string]interface{}{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
	})

	created, err := s.client.CreateProduct(remote)
	if err != nil {
		res.Remote = err
		logger.Warn("product: catalog create failed after local insert", "product_id", p.ID, "error", err)
		return res
	}

	p.WooID = created.ID
	if err := s.repo.UpdateFields(p.ID, map[string]interface{}{"woo_id": created.ID}); err != nil {
		res.Remote = err
	}
	return res
}

// Deactivate soft-retires the product locally and drafts it remotely.
func (s *ProductService) Deactivate(id uint) DualWriteResult {
	var res DualWriteResult

	product, err := s.repo.FindByID(id)
	if err != nil {
		res.Local = err
		return res
	}

	if err := s.repo.Deactivate(id); err != nil {
		res.Local = err
		return res
	}

	if product.WooID == 0 {
		res.RemoteSkipped = true
		return res
	}
	if err := s.client.UpdateProduct(product.WooID, map[string]interface{}{"status": "draft"}); err != nil {
		res.Remote = err
	}
	return res
}

// translateProductFields splits a partial admin field map into local column
// updates and external API fields. The two schemas disagree on names and on
// price typing: the catalog wants regular_price as a string.
func translateProductFields(fields map[string]interface{}) (local, remote map[string]interface{}) {
	local = map[string]interface{}{}
	remote = map[string]interface{}{}

	for key, val := range fields {
		switch key {
		case "name":
			local["name"] = val
			remote["name"] = val
		case "description":
			local["description"] = val
			remote["description"] = val
		case "price":
			f := toFloat(val)
			local["price"] = f
			local["regular_price"] = f
			remote["regular_price"] = strconv.FormatFloat(f, 'f', 2, 64)
		case "sale_price":
			f := toFloat(val)
			local["sale_price"] = f
			remote["sale_price"] = strconv.FormatFloat(f, 'f', 2, 64)
		case "stock_quantity":
			n := int(toFloat(val))
			local["stock_quantity"] = n
			remote["stock_quantity"] = n
		case "stock_status":
			local["stock_status"] = val
			remote["stock_status"] = val
		case "is_active":
			active, _ := val.(bool)
			local["is_active"] = active
			if active {
				remote["status"] = "publish"
			} else {
				remote["status"] = "draft"
			}
		case "is_featured":
			local["is_featured"] = val
			remote["featured"] = val
		}
	}
	return local, remote
}

// toFloat accepts the numeric shapes JSON decoding can produce.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
