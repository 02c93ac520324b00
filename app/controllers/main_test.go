package controllers

import (
	"fmt"
	"testing"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache DSN
// keyed by test name keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := newEmptyTestDB(t)
	err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Product{},
		&models.Category{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.LoyaltyPoint{},
		&models.DeliveryBatch{},
		&models.DeliveryItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newEmptyTestDB opens a database with no tables at all, for exercising the
// degraded read paths.
func newEmptyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}
