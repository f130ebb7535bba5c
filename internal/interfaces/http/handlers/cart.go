// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/manobakers/bakery-backend/internal/config"
	"github.com/manobakers/bakery-backend/internal/domain/catalog"
	"github.com/manobakers/bakery-backend/internal/domain/order"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	sessions *order.Sessions
	catalog  *catalog.Service
	config   *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *order.Sessions, cat *catalog.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  cat,
		config:   cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ItemID int `json:"item_id" binding:"required"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// FulfillmentRequest represents the fulfillment details payload
type FulfillmentRequest struct {
	OrderType    string     `json:"order_type" binding:"required,oneof=delivery pickup"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	PickupTiming string     `json:"pickup_timing" binding:"omitempty,oneof=now later"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Notes        string     `json:"notes"`
}

// CartLineResponse represents a cart line with its item resolved
type CartLineResponse struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
	Subtotal int64        `json:"subtotal"`
}

// CartResponse represents the cart with totals and fulfillment details
type CartResponse struct {
	Items       []CartLineResponse `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalPrice  int64              `json:"total_price"`
	Fulfillment order.Fulfillment  `json:"fulfillment"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var resp CartResponse
	err := h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		resp = h.cartResponse(agg)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    resp,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var resp CartResponse
	err := h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		if err := agg.AddItem(req.ItemID); err != nil {
			return err
		}
		resp = h.cartResponse(agg)
		return nil
	})
	if err != nil {
		if errors.Is(err, order.ErrUnknownItem) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found or unavailable",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    resp,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var resp CartResponse
	err = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		if err := agg.SetQuantity(itemID, *req.Quantity); err != nil {
			return err
		}
		resp = h.cartResponse(agg)
		return nil
	})
	if err != nil {
		if errors.Is(err, order.ErrUnknownItem) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item is not in the cart",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    resp,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	var resp CartResponse
	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		agg.RemoveItem(itemID)
		resp = h.cartResponse(agg)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    resp,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		agg.Clear()
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var count int
	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		count = agg.TotalItemCount()
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// SetFulfillment handles PUT /cart/fulfillment
func (h *CartHandler) SetFulfillment(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req FulfillmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	fulfillment := order.Fulfillment{
		OrderType:    order.OrderType(req.OrderType),
		Address:      req.Address,
		Phone:        req.Phone,
		PickupTiming: order.PickupTiming(req.PickupTiming),
		ScheduledAt:  req.ScheduledAt,
		Notes:        req.Notes,
	}
	if fulfillment.PickupTiming == "" {
		fulfillment.PickupTiming = order.PickupNow
	}

	var resp CartResponse
	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		agg.SetFulfillment(fulfillment)
		resp = h.cartResponse(agg)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Fulfillment details updated successfully",
		"data":    resp,
	})
}

// cartResponse builds the resolved cart view from aggregator state
func (h *CartHandler) cartResponse(agg *order.Aggregator) CartResponse {
	lines := agg.Lines()
	resp := CartResponse{
		Items:       make([]CartLineResponse, 0, len(lines)),
		TotalItems:  agg.TotalItemCount(),
		TotalPrice:  agg.TotalPrice(),
		Fulfillment: agg.Fulfillment(),
	}

	for _, line := range lines {
		item, err := h.catalog.FindItem(line.ItemID)
		if err != nil {
			continue
		}
		resp.Items = append(resp.Items, CartLineResponse{
			Item:     item,
			Quantity: line.Quantity,
			Subtotal: item.Price * int64(line.Quantity),
		})
	}

	return resp
}
