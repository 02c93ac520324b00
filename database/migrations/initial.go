package migrations

import (
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260110000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260110000001_create_user_roles_table", &CreateUserRolesTable{})
	migration.Register("20260110000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260110000003_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260110000004_create_cart_items_table", &CreateCartItemsTable{})
	migration.Register("20260110000005_create_wishlist_items_table", &CreateWishlistItemsTable{})
	migration.Register("20260110000006_create_loyalty_points_table", &CreateLoyaltyPointsTable{})
	migration.Register("20260110000007_create_delivery_tables", &CreateDeliveryTables{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: user roles --------

type CreateUserRolesTable struct{}

func (m *CreateUserRolesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.UserRole{})
}

func (m *CreateUserRolesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("user_roles")
}

// -------- 0003: products cache --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0004: categories cache --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- 0005: cart items --------

type CreateCartItemsTable struct{}

func (m *CreateCartItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartItem{})
}

func (m *CreateCartItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items")
}

// -------- 0006: wishlist items --------

type CreateWishlistItemsTable struct{}

func (m *CreateWishlistItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.WishlistItem{})
}

func (m *CreateWishlistItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("wishlist_items")
}

// -------- 0007: loyalty ledger --------

type CreateLoyaltyPointsTable struct{}

func (m *CreateLoyaltyPointsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.LoyaltyPoint{})
}

func (m *CreateLoyaltyPointsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("loyalty_points")
}

// -------- 0008: delivery batches and items --------

type CreateDeliveryTables struct{}

func (m *CreateDeliveryTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.DeliveryBatch{}, &models.DeliveryItem{})
}

func (m *CreateDeliveryTables) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("delivery_items"); err != nil {
		return err
	}
	return db.Migrator().DropTable("delivery_batches")
}
