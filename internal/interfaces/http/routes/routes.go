// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier order.Notifier, log *logrus.Logger) {
	setupAuthRoutes(rg, cfg)
	setupStorefrontRoutes(rg, db, redisClient, cfg, notifier, log)
	setupAdminRoutes(rg, db, redisClient, cfg, notifier)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AdminAuth(cfg))
		{
			protected.GET("/me", authHandler.Me)
		}
	}
}

// setupStorefrontRoutes sets up the public shopping routes
func setupStorefrontRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier order.Notifier, log *logrus.Logger) {
	catalogService := catalog.NewService(db)

	catalogHandler := handlers.NewCatalogHandler(db)
	cartHandler := handlers.NewCartHandler(db, redisClient, catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg, notifier, log)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, notifier)
	contentHandler := handlers.NewContentHandler(db)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.GET("/:slug", catalogHandler.GetProductBySlug)
	}

	cart := rg.Group("/cart")
	cart.Use(middleware.GuestSession())
	cart.Use(middleware.OptionalAuth(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:key", cartHandler.UpdateItem)
		cart.DELETE("/items/:key", cartHandler.RemoveItem)
		cart.PUT("/items/:key/select", cartHandler.SelectItem)
		cart.POST("/merge", cartHandler.MergeCart)
	}

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.GuestSession())
	checkout.Use(middleware.OptionalAuth(cfg))
	{
		checkout.GET("/summary", checkoutHandler.GetSummary)
		checkout.POST("", checkoutHandler.PlaceOrder)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("/track/:number", orderHandler.TrackByNumber)
	}

	rg.GET("/banners", contentHandler.ListBanners)
	rg.GET("/menu", contentHandler.GetMenu)

	blog := rg.Group("/blog")
	{
		blog.GET("", contentHandler.ListPosts)
		blog.GET("/:slug", contentHandler.GetPostBySlug)
	}
}

// setupAdminRoutes sets up the back-office routes
func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier order.Notifier) {
	catalogHandler := handlers.NewCatalogHandler(db)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, notifier)
	contentHandler := handlers.NewContentHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg))
	{
		products := admin.Group("/products")
		{
			products.GET("", catalogHandler.AdminListProducts)
			products.POST("", catalogHandler.CreateProduct)
			products.GET("/:id", catalogHandler.GetProduct)
			products.PUT("/:id", catalogHandler.UpdateProduct)
			products.DELETE("/:id", catalogHandler.DeleteProduct)
			products.POST("/:id/variants", catalogHandler.AddVariant)
		}

		variants := admin.Group("/variants")
		{
			variants.PUT("/:id", catalogHandler.UpdateVariant)
			variants.DELETE("/:id", catalogHandler.DeleteVariant)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
			orders.GET("/:id/invoice", orderHandler.GenerateInvoice)
		}

		banners := admin.Group("/banners")
		{
			banners.GET("", contentHandler.AdminListBanners)
			banners.POST("", contentHandler.CreateBanner)
			banners.PUT("/:id", contentHandler.UpdateBanner)
			banners.DELETE("/:id", contentHandler.DeleteBanner)
		}

		menu := admin.Group("/menu")
		{
			menu.GET("", contentHandler.AdminGetMenu)
			menu.POST("", contentHandler.CreateMenuItem)
			menu.PUT("/:id", contentHandler.UpdateMenuItem)
			menu.DELETE("/:id", contentHandler.DeleteMenuItem)
		}

		blog := admin.Group("/blog")
		{
			blog.GET("", contentHandler.AdminListPosts)
			blog.POST("", contentHandler.CreatePost)
			blog.PUT("/:id", contentHandler.UpdatePost)
			blog.DELETE("/:id", contentHandler.DeletePost)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("/shipping", settingsHandler.GetShipping)
			settings.PUT("/shipping", settingsHandler.UpdateShipping)
		}
	}
}
