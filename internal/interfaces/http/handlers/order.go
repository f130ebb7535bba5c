// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manobakers/bakery-backend/internal/config"
	"github.com/manobakers/bakery-backend/internal/domain/order"
)

// OrderHandler handles order submission endpoints
type OrderHandler struct {
	sessions *order.Sessions
	config   *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(sessions *order.Sessions, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		sessions: sessions,
		config:   cfg,
	}
}

// ValidateOrder handles POST /orders/validate - checks the cart and
// fulfillment details and returns every violated rule
func (h *OrderHandler) ValidateOrder(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var errs order.ValidationErrors
	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		errs = agg.ValidateForSubmit()
		return nil
	})

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "Order validation failed",
			"validation_errors": errs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order is ready to submit",
	})
}

// PreviewOrder handles GET /orders/preview - renders the outgoing
// message without submitting anything
func (h *OrderHandler) PreviewOrder(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var preview *order.Order
	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		preview = agg.PreviewOrder()
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order preview generated successfully",
		"data": gin.H{
			"order":   preview,
			"summary": preview.Summary(),
		},
	})
}

// SubmitOrder handles POST /orders/submit - validates, captures the
// order snapshot, clears the session and returns the WhatsApp handoff
// link
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var (
		submitted *order.Order
		errs      order.ValidationErrors
	)
	_ = h.sessions.Do(sessionID, func(agg *order.Aggregator) error {
		submitted, errs = agg.SubmitOrder()
		return nil
	})

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "Order validation failed",
			"validation_errors": errs,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data": gin.H{
			"order":        submitted,
			"summary":      submitted.Summary(),
			"whatsapp_url": submitted.HandoffLink(h.config.HandoffTarget()),
		},
	})
}
