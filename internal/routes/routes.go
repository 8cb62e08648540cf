package routes

import (
	"lumea_back_end/internal/handlers/admin"
	"lumea_back_end/internal/handlers/product"
	"lumea_back_end/internal/handlers/user"
	"lumea_back_end/internal/middleware"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	users := store.NewUserStore(db)
	catalog := store.NewCatalogStore(db)
	carts := store.NewCartStore(db)
	orders := store.NewOrderStore(db)
	reviews := store.NewReviewStore(db)

	authHandler := user.NewAuthHandler(users)
	cartHandler := user.NewCartHandler(carts)
	orderHandler := user.NewOrderHandler(orders)
	reviewHandler := user.NewReviewHandler(reviews)
	productHandler := product.NewProductHandler(catalog)
	categoryHandler := product.NewCategoryHandler(catalog)
	adminOrderHandler := admin.NewOrderHandler(orders)
	adminUserHandler := admin.NewUserHandler(users)

	authRequired := middleware.AuthRequired(users)
	catalogWriteLimit := middleware.RateLimit("catalog_write", middleware.CatalogMaxWrites, middleware.CatalogWindow)

	// Auth
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimit("register", middleware.RegisterMaxAttempts, middleware.AuthWindow), authHandler.Register)
		auth.POST("/login", middleware.RateLimit("login", middleware.LoginMaxAttempts, middleware.AuthWindow), authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Utilisateurs
	usersGroup := r.Group("/users")
	{
		usersGroup.GET("/me", authRequired, authHandler.Me)
		usersGroup.GET("", authRequired, middleware.RequireAdmin, adminUserHandler.List)
		usersGroup.PUT("/:id/role", authRequired, middleware.RequireAdmin, adminUserHandler.UpdateRole)
	}

	// Catalogue : lectures publiques, écritures admin
	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
		categories.POST("", catalogWriteLimit, authRequired, middleware.RequireAdmin, categoryHandler.Create)
		categories.PUT("/:id", catalogWriteLimit, authRequired, middleware.RequireAdmin, categoryHandler.Update)
		categories.DELETE("/:id", catalogWriteLimit, authRequired, middleware.RequireAdmin, categoryHandler.Delete)
	}
	products := r.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", catalogWriteLimit, authRequired, middleware.RequireAdmin, productHandler.Create)
		products.PUT("/:id", catalogWriteLimit, authRequired, middleware.RequireAdmin, productHandler.Update)
		products.DELETE("/:id", catalogWriteLimit, authRequired, middleware.RequireAdmin, productHandler.Delete)
	}

	// Panier
	cart := r.Group("/cart", authRequired)
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	// Commandes
	ordersGroup := r.Group("/orders", authRequired)
	{
		ordersGroup.POST("", orderHandler.Create)
		ordersGroup.GET("", orderHandler.ListMine)
		ordersGroup.GET("/admin/all", middleware.RequireAdmin, adminOrderHandler.ListAll)
		ordersGroup.GET("/admin/stats", middleware.RequireAdmin, adminOrderHandler.Stats)
		ordersGroup.GET("/:id", orderHandler.Get)
		ordersGroup.POST("/:id/pay", orderHandler.Pay)
		ordersGroup.POST("/:id/receive", orderHandler.Receive)
		ordersGroup.POST("/:id/cancel", orderHandler.Cancel)
		ordersGroup.PUT("/:id/status", middleware.RequireAdmin, adminOrderHandler.UpdateStatus)
	}

	// Avis
	reviewsGroup := r.Group("/reviews")
	{
		reviewsGroup.POST("", authRequired, reviewHandler.Create)
		reviewsGroup.GET("/product/:id", reviewHandler.ListByProduct)
	}
}
