package services

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/cache"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/metrics"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/orm"
	"gorm.io/gorm"
)

// wooSyncPageSize is the per_page used when pulling from the catalog API.
const wooSyncPageSize = 100

// ProductPuller is the slice of the catalog API the sync needs.
type ProductPuller interface {
	ListProducts(page, perPage int) ([]woo.Product, int, error)
}

// CategoryPuller is the slice of the catalog API the category sync needs.
type CategoryPuller interface {
	ListCategories(page, perPage int) ([]woo.Category, int, error)
}

// AttributePuller fetches product attributes; they are proxied, never cached.
type AttributePuller interface {
	ListAttributes() ([]woo.Attribute, error)
}

// CategoryView is a cached category reshaped to the external schema's field
// names, which is what the frontend expects.
type CategoryView struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int64  `json:"parent"`
	Count  int    `json:"count"`
}

// AdminProduct is a product row with its category names resolved.
type AdminProduct struct {
	models.Product
	CategoryNames []string `json:"category_names"`
}

// CatalogService owns the product/category cache tables: reading them for
// the storefront and admin, and replacing them from sync payloads or
// directly from the catalog API.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
	}
}

// CachedCategories returns the cache table ordered by name, reshaped to the
// external field names, optionally filtered to root-level categories.
func (s *CatalogService) CachedCategories(rootOnly bool) ([]CategoryView, error) {
	cats, err := s.categories.AllOrdered(rootOnly)
	if err != nil {
		return nil, err
	}

	views := lo.Map(cats, func(c models.Category, _ int) CategoryView {
		return CategoryView{
			ID:     c.WooID,
			Name:   c.Name,
			Slug:   c.Slug,
			Parent: c.ParentID,
			Count:  c.ProductCount,
		}
	})
	return views, nil
}

// SyncCategories replaces the whole category cache with the given external
// records. Delete and upsert run unwrapped by contract; repeated identical
// syncs are idempotent and always leave exactly len(records) rows.
func (s *CatalogService) SyncCategories(records []woo.Category) (int, error) {
	rows := lo.Map(records, func(c woo.Category, _ int) models.Category {
		return models.Category{
			WooID:        c.ID,
			Name:         c.Name,
			Slug:         c.Slug,
			ParentID:     c.Parent,
			ProductCount: c.Count,
		}
	})

	if err := s.categories.ReplaceAll(rows); err != nil {
		return 0, fmt.Errorf("catalog: sync categories: %w", err)
	}

	metrics.CatalogSyncRows.WithLabelValues("categories").Add(float64(len(rows)))
	cache.Del(repositories.CategoriesCacheKey) //nolint:errcheck // cache miss is the safe failure mode

	return len(rows), nil
}

// AdminProducts lists every product with category names attached. The
// membership is a denormalized array of external ids, not a foreign key, so
// the join happens here: one query for products, one for just the
// categories any product references, then a merge in memory.
func (s *CatalogService) AdminProducts() ([]AdminProduct, error) {
	products, err := s.products.All()
	if err != nil {
		return nil, err
	}
	return s.withCategoryNames(products)
}

// AdminProductsPaged is the paginated variant for large catalogs.
func (s *CatalogService) AdminProductsPaged(page, limit int) ([]AdminProduct, orm.Pagination, error) {
	products, p, err := s.products.Paged(page, limit)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	result, err := s.withCategoryNames(products)
	return result, p, err
}

func (s *CatalogService) withCategoryNames(products []models.Product) ([]AdminProduct, error) {
	referenced := s.products.ReferencedCategoryIDs(products)
	cats, err := s.categories.ByWooIDs(referenced)
	if err != nil {
		return nil, err
	}

	names := lo.SliceToMap(cats, func(c models.Category) (int64, string) {
		return c.WooID, c.Name
	})

	result := lo.Map(products, func(p models.Product, _ int) AdminProduct {
		return AdminProduct{
			Product: p,
			CategoryNames: lo.FilterMap(p.CategoryIDs, func(id int64, _ int) (string, bool) {
				name, ok := names[id]
				return name, ok
			}),
		}
	})
	return result, nil
}

// PullCategories fetches every category from the catalog API and swaps the
// whole cache table in one go.
func (s *CatalogService) PullCategories(client CategoryPuller) (int, error) {
	var all []woo.Category
	for page := 1; ; page++ {
		items, total, err := client.ListCategories(page, wooSyncPageSize)
		if err != nil {
			return 0, fmt.Errorf("catalog: pull categories page %d: %w", page, err)
		}
		all = append(all, items...)
		if len(all) >= total || len(items) < wooSyncPageSize {
			break
		}
	}
	return s.SyncCategories(all)
}

// PullProducts walks the catalog API page by page and upserts every product
// into the cache, keyed by external id.
func (s *CatalogService) PullProducts(client ProductPuller) (int, error) {
	synced := 0
	for page := 1; ; page++ {
		items, total, err := client.ListProducts(page, wooSyncPageSize)
		if err != nil {
			return synced, fmt.Errorf("catalog: pull products page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}

		rows := lo.Map(items, func(p woo.Product, _ int) models.Product {
			return productFromWoo(p)
		})
		if err := s.products.UpsertMany(rows); err != nil {
			return synced, fmt.Errorf("catalog: upsert products page %d: %w", page, err)
		}

		synced += len(rows)
		metrics.CatalogSyncRows.WithLabelValues("products").Add(float64(len(rows)))

		if synced >= total || len(items) < wooSyncPageSize {
			break
		}
	}

	logger.Info("catalog: product pull complete", "synced", synced)
	return synced, nil
}

// productFromWoo converts a wire product to a cache row. Woo serializes
// prices as strings; unparsable values cache as 0.
func productFromWoo(p woo.Product) models.Product {
	stock := 0
	if p.StockQuantity != nil {
		stock = *p.StockQuantity
	}

	return models.Product{
		WooID:         p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         parsePrice(p.Price),
		RegularPrice:  parsePrice(p.RegularPrice),
		SalePrice:     parsePrice(p.SalePrice),
		StockQuantity: stock,
		StockStatus:   p.StockStatus,
		CategoryIDs: lo.Map(p.Categories, func(c woo.CategoryRef, _ int) int64 {
			return c.ID
		}),
		Images: lo.Map(p.Images, func(img woo.Image, _ int) string {
			return img.Src
		}),
		IsActive:   p.Status != "draft" && p.Status != "trash",
		IsFeatured: p.Featured,
	}
}

func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
