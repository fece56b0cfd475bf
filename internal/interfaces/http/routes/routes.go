// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API v1 routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
	SetupWishlistRoutes(rg, db, cfg)
	SetupCheckoutRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/latest", productHandler.GetLatestArrivals)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)

		// Rating requires a signed-in user
		rated := products.Group("")
		rated.Use(middleware.AuthMiddleware(cfg))
		{
			rated.POST("/:id/rating", productHandler.RateProduct)
		}
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items/:productId", cartHandler.AddToCart)
		cart.POST("/buy-now/:productId", cartHandler.BuyNow)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(db)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/toggle/:productId", wishlistHandler.Toggle)
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg))
	{
		checkout.POST("/address", checkoutHandler.SaveAddress)
		checkout.POST("/payment", checkoutHandler.SelectPayment)
		checkout.POST("/gpay/confirm", checkoutHandler.ConfirmMockPayment)
		checkout.POST("/razorpay/callback", checkoutHandler.GatewayCallback)
	}
}

// SetupOrderRoutes sets up user-facing order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}
}

// SetupAdminRoutes sets up staff-only routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	adminOrderHandler := handlers.NewAdminOrderHandler(db, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Product management
		products := admin.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.PUT("/:id/stock", productHandler.ToggleStock)
		}

		// Order management
		orders := admin.Group("/orders")
		{
			orders.GET("", adminOrderHandler.ListOrders)
			orders.GET("/:id", adminOrderHandler.GetOrder)
			orders.PUT("/:id", adminOrderHandler.UpdateOrder)
			orders.PUT("/:id/items", adminOrderHandler.UpdateOrderItems)
			orders.DELETE("/:id", adminOrderHandler.DeleteOrder)
			orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		}

		// Dashboard
		admin.GET("/dashboard", adminOrderHandler.Dashboard)
	}
}
