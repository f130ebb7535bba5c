// internal/interfaces/http/handlers/info.go
package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manobakers/bakery-backend/internal/config"
)

// InfoHandler serves the storefront business information
type InfoHandler struct {
	config *config.Config
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(cfg *config.Config) *InfoHandler {
	return &InfoHandler{config: cfg}
}

// GetInfo handles GET /info - business details and the general WhatsApp
// contact link with the default greeting pre-filled
func (h *InfoHandler) GetInfo(c *gin.Context) {
	contactLink := h.config.HandoffTarget()
	if msg := h.config.WhatsApp.DefaultMessage; msg != "" {
		sep := "?"
		if strings.Contains(contactLink, "?") {
			sep = "&"
		}
		contactLink += sep + "text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Business info retrieved successfully",
		"data": gin.H{
			"name":    h.config.Business.Name,
			"address": h.config.Business.Address,
			"email":   h.config.Business.Email,
			"hours": gin.H{
				"weekdays": h.config.Business.WeekdayHours,
				"weekends": h.config.Business.WeekendHours,
			},
			"whatsapp_contact": contactLink,
		},
	})
}
