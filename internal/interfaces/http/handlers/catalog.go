// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manobakers/bakery-backend/internal/config"
	"github.com/manobakers/bakery-backend/internal/domain/catalog"
)

// CatalogHandler handles catalog endpoints
type CatalogHandler struct {
	catalog *catalog.Service
	config  *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Service, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		config:  cfg,
	}
}

// GetCategories handles GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog retrieved successfully",
		"data": gin.H{
			"categories": h.catalog.Categories(),
		},
	})
}

// GetCategory handles GET /catalog/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalog.FindCategory(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category retrieved successfully",
		"data":    category,
	})
}

// GetItem handles GET /catalog/items/:id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	item, err := h.catalog.FindItem(itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item retrieved successfully",
		"data":    item,
	})
}
