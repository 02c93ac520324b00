package routes

import (
	"github.com/webproformation/LaboutiqueOK-sub001/app/controllers"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/metrics"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/router"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/storage"
	"gorm.io/gorm"
)

// Register mounts every API route. The admin group stacks token auth on
// top of a role lookup; the storefront group only honors the maintenance
// flag, and webhooks stay open since they carry their own shared secret.
func Register(r *router.Router, db *gorm.DB, wooClient *woo.Client, disk storage.Disk) {
	authC := controllers.NewAuthController(db)
	categoryC := controllers.NewCategoryController(db, wooClient)
	productC := controllers.NewAdminProductController(db, wooClient, wooClient, wooClient)
	cartC := controllers.NewCartController(db)
	wishlistC := controllers.NewWishlistController(db)
	loyaltyC := controllers.NewLoyaltyController(db)
	deliveryC := controllers.NewDeliveryController(db, wooClient)
	storageC := controllers.NewStorageController(disk)
	webhookC := controllers.NewWebhookController(services.NewRevalidateService())

	roles := repositories.NewRoleRepository(db)
	admin := middleware.RequireAdmin(roles.RoleFor)

	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Auth.
	api.Post("/auth/login", "auth.login", authC.Login)
	api.Post("/auth/register", "auth.register", authC.Register)
	api.Get("/auth/me", "auth.me", authC.Me, middleware.Auth)

	// Storefront. Reads degrade rather than fail; all of it honors the
	// maintenance flag.
	store := api.Group("", middleware.Maintenance)
	store.Get("/categories-cache", "categories.list", categoryC.List)
	store.Get("/media", "media.list", storageC.Media)

	store.Get("/cart/items", "cart.list", cartC.List, middleware.Auth)
	store.Post("/cart/items", "cart.add", cartC.Add, middleware.Auth)
	store.Patch("/cart/items/{id}", "cart.update", cartC.Update, middleware.Auth)
	store.Delete("/cart/items/{id}", "cart.delete", cartC.Delete, middleware.Auth)

	store.Get("/wishlist", "wishlist.list", wishlistC.List, middleware.OptionalAuth)
	store.Post("/wishlist", "wishlist.add", wishlistC.Add, middleware.OptionalAuth)
	store.Delete("/wishlist/{id}", "wishlist.remove", wishlistC.Remove, middleware.OptionalAuth)
	store.Post("/wishlist/migrate", "wishlist.migrate", wishlistC.Migrate, middleware.Auth)

	store.Get("/loyalty/points", "loyalty.points", loyaltyC.Points, middleware.Auth)
	store.Post("/loyalty/points", "loyalty.award", loyaltyC.Award, middleware.Auth)
	store.Post("/loyalty/daily-bonus", "loyalty.daily", loyaltyC.DailyBonus, middleware.Auth)
	store.Get("/loyalty/tier", "loyalty.tier", loyaltyC.Tier, middleware.Auth)

	store.Get("/delivery/batches", "delivery.list", deliveryC.List, middleware.Auth)
	store.Post("/delivery/batches", "delivery.create", deliveryC.Create, middleware.Auth)
	store.Get("/delivery/batches/{id}", "delivery.get", deliveryC.Get, middleware.Auth)
	store.Post("/delivery/batches/{id}/validate", "delivery.validate", deliveryC.Validate, middleware.Auth)

	// Admin. Category sync shares the storefront path but is admin-only.
	api.Post("/categories-cache", "categories.sync", categoryC.Sync, middleware.Auth, admin)

	adm := api.Group("/admin", middleware.Auth, admin)
	adm.Get("/products", "admin.products.list", productC.List)
	adm.Post("/products", "admin.products.create", productC.Create)
	adm.Patch("/products/{id}", "admin.products.update", productC.Update)
	adm.Delete("/products/{id}", "admin.products.delete", productC.Delete)
	adm.Post("/products/sync", "admin.products.sync", productC.Sync)
	adm.Get("/attributes", "admin.attributes", productC.Attributes)
	api.Post("/storage/upload", "storage.upload", storageC.Upload, middleware.Auth, admin)

	// Webhooks authenticate with their shared secret, never a token.
	api.Post("/webhooks/db", "webhooks.db", webhookC.DBChange)
	api.Post("/revalidate", "webhooks.revalidate", webhookC.Revalidate)
}
