// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/manobakers/bakery-backend/internal/config"
	"github.com/manobakers/bakery-backend/internal/domain/catalog"
	"github.com/manobakers/bakery-backend/internal/domain/order"
	"github.com/manobakers/bakery-backend/internal/interfaces/http/handlers"
)

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, cat *catalog.Service, sessions *order.Sessions, cfg *config.Config) {
	SetupCatalogRoutes(rg, cat, cfg)
	SetupCartRoutes(rg, cat, sessions, cfg)
	SetupOrderRoutes(rg, sessions, cfg)
	SetupInfoRoutes(rg, cfg)
}

// SetupCatalogRoutes sets up catalog related routes
func SetupCatalogRoutes(rg *gin.RouterGroup, cat *catalog.Service, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(cat, cfg)

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/categories", catalogHandler.GetCategories)
		catalogGroup.GET("/categories/:id", catalogHandler.GetCategory)
		catalogGroup.GET("/items/:id", catalogHandler.GetItem)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, cat *catalog.Service, sessions *order.Sessions, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(sessions, cat, cfg)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.PUT("/fulfillment", cartHandler.SetFulfillment)
	}
}

// SetupOrderRoutes sets up order submission routes
func SetupOrderRoutes(rg *gin.RouterGroup, sessions *order.Sessions, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(sessions, cfg)

	orders := rg.Group("/orders")
	{
		orders.POST("/validate", orderHandler.ValidateOrder)
		orders.GET("/preview", orderHandler.PreviewOrder)
		orders.POST("/submit", orderHandler.SubmitOrder)
	}
}

// SetupInfoRoutes sets up business info routes
func SetupInfoRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	infoHandler := handlers.NewInfoHandler(cfg)

	rg.GET("/info", infoHandler.GetInfo)
}
