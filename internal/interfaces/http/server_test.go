// internal/interfaces/http/server_test.go
package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/manobakers/bakery-backend/internal/config"
	"github.com/manobakers/bakery-backend/internal/domain/catalog"
	"github.com/manobakers/bakery-backend/internal/domain/order"
	"github.com/manobakers/bakery-backend/internal/infrastructure/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Mano Bakers Storefront",
			Version:     "test",
			Environment: "test",
		},
		Server: config.ServerConfig{Port: "0"},
		Store:  config.StoreConfig{Driver: "memory", SessionTTL: 24 * time.Hour},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
		},
		WhatsApp: config.WhatsAppConfig{
			Link:           "https://wa.me/message/TESTLINK?src=qr",
			DefaultMessage: "Hi Mano Bakers, I'd like to place an order. Can you help me?",
		},
		Business: config.BusinessConfig{
			Name:    "Mano Bakers",
			Address: "123 Baker Street, Colombo 07, Sri Lanka",
			Email:   "hello@manobakers.me",
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

// client drives the engine through httptest, carrying the session
// cookie between requests like a browser would
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []*http.Cookie
}

func setup(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.NewService("")
	require.NoError(t, err)

	sessions := order.NewSessions(cat, memory.NewSnapshotStore())
	server := NewServer(testConfig(), cat, sessions, nil)

	return &client{t: t, engine: server.Engine()}
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

func TestHealthEndpoints(t *testing.T) {
	c := setup(t)

	w, body := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(14), body["catalog_items"])

	w, body = c.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestCatalogEndpoints(t *testing.T) {
	c := setup(t)

	w, body := c.do(http.MethodGet, "/api/v1/catalog/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cats, ok := dataOf(t, body)["categories"].([]any)
	require.True(t, ok)
	assert.Len(t, cats, 6)

	w, body = c.do(http.MethodGet, "/api/v1/catalog/categories/cakes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	category := dataOf(t, body)
	assert.Equal(t, "Cakes", category["name"])
	assert.Len(t, category["items"].([]any), 3)

	w, _ = c.do(http.MethodGet, "/api/v1/catalog/categories/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = c.do(http.MethodGet, "/api/v1/catalog/items/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	item := dataOf(t, body)
	assert.Equal(t, "POP001", item["code"])
	assert.Equal(t, float64(1500), item["price"])

	w, _ = c.do(http.MethodGet, "/api/v1/catalog/items/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = c.do(http.MethodGet, "/api/v1/catalog/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartFlow(t *testing.T) {
	c := setup(t)

	// Fresh cart is empty
	w, body := c.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, body)
	assert.Equal(t, float64(0), data["total_items"])
	assert.Equal(t, float64(0), data["total_price"])

	// One chocolate fudge cake, two red velvet cupcakes
	w, _ = c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 3})
	w, body = c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	data = dataOf(t, body)
	assert.Equal(t, float64(3), data["total_items"])
	assert.Equal(t, float64(2000), data["total_price"])
	items := data["items"].([]any)
	assert.Len(t, items, 2)

	w, body = c.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), dataOf(t, body)["count"])

	// Update quantity
	w, body = c.do(http.MethodPut, "/api/v1/cart/items/3", gin.H{"quantity": 4})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), dataOf(t, body)["total_items"])

	// Quantity zero removes the line
	w, body = c.do(http.MethodPut, "/api/v1/cart/items/3", gin.H{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataOf(t, body)["items"].([]any), 1)

	// Remove the remaining line
	w, body = c.do(http.MethodDelete, "/api/v1/cart/items/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), dataOf(t, body)["total_items"])
}

func TestCartErrors(t *testing.T) {
	c := setup(t)

	w, _ := c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = c.do(http.MethodPost, "/api/v1/cart/items", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Setting a quantity for an item never added fails
	w, _ = c.do(http.MethodPut, "/api/v1/cart/items/1", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = c.do(http.MethodPut, "/api/v1/cart/items/abc", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Removing an item that is not in the cart is a no-op
	w, _ = c.do(http.MethodDelete, "/api/v1/cart/items/9999", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetFulfillment(t *testing.T) {
	c := setup(t)

	w, body := c.do(http.MethodPut, "/api/v1/cart/fulfillment", gin.H{
		"order_type": "delivery",
		"address":    "123 Baker Street",
		"phone":      "071-234 5678",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	f := dataOf(t, body)["fulfillment"].(map[string]any)
	assert.Equal(t, "delivery", f["order_type"])
	assert.Equal(t, "123 Baker Street", f["address"])

	w, body = c.do(http.MethodPut, "/api/v1/cart/fulfillment", gin.H{
		"order_type":    "pickup",
		"pickup_timing": "later",
		"scheduled_at":  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	f = dataOf(t, body)["fulfillment"].(map[string]any)
	assert.Equal(t, "pickup", f["order_type"])
	assert.Equal(t, "later", f["pickup_timing"])

	w, _ = c.do(http.MethodPut, "/api/v1/cart/fulfillment", gin.H{"order_type": "teleport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateOrder(t *testing.T) {
	c := setup(t)

	// Empty cart with default delivery fulfillment fails three ways
	w, body := c.do(http.MethodPost, "/api/v1/orders/validate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	verrs := body["validation_errors"].([]any)
	assert.Len(t, verrs, 3)

	codes := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		codes = append(codes, ve.(map[string]any)["code"].(string))
	}
	assert.Contains(t, codes, "empty_cart")
	assert.Contains(t, codes, "missing_address")
	assert.Contains(t, codes, "invalid_phone")

	// Fill in the cart and details and validation passes
	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})
	c.do(http.MethodPut, "/api/v1/cart/fulfillment", gin.H{
		"order_type": "delivery",
		"address":    "123 Baker Street",
		"phone":      "0712345678",
	})

	w, _ = c.do(http.MethodPost, "/api/v1/orders/validate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitOrderFlow(t *testing.T) {
	c := setup(t)

	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})
	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 3})
	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 3})
	c.do(http.MethodPut, "/api/v1/cart/fulfillment", gin.H{
		"order_type": "delivery",
		"address":    "123 Baker Street",
		"phone":      "071-234 5678",
	})

	// Preview does not clear anything
	w, body := c.do(http.MethodGet, "/api/v1/orders/preview", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	preview := dataOf(t, body)
	assert.Contains(t, preview["summary"].(string), "NEW ORDER - Mano Bakers")

	w, body = c.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.Equal(t, float64(3), dataOf(t, body)["count"])

	// Submit returns the order, the message and the handoff link
	w, body = c.do(http.MethodPost, "/api/v1/orders/submit", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, body)

	o := data["order"].(map[string]any)
	assert.Equal(t, float64(3), o["total_items"])
	assert.Equal(t, float64(2000), o["total_price"])
	assert.True(t, strings.HasPrefix(o["order_number"].(string), "MB-"))

	summary := data["summary"].(string)
	assert.Contains(t, summary, "💰 *TOTAL: Rs. 2,000*")
	assert.Contains(t, summary, o["order_number"].(string))

	link := data["whatsapp_url"].(string)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/message/TESTLINK?src=qr&text="))
	assert.NotContains(t, link, "+")

	// Submit fully resets the session
	w, body = c.do(http.MethodGet, "/api/v1/cart", nil)
	data = dataOf(t, body)
	assert.Equal(t, float64(0), data["total_items"])
	f := data["fulfillment"].(map[string]any)
	assert.Equal(t, "delivery", f["order_type"])
	assert.Nil(t, f["address"])
}

func TestSubmitOrderValidationFailure(t *testing.T) {
	c := setup(t)

	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})

	// Default fulfillment is delivery with no address or phone
	w, body := c.do(http.MethodPost, "/api/v1/orders/submit", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["validation_errors"])

	// Cart untouched after the failed submit
	w, body = c.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.Equal(t, float64(1), dataOf(t, body)["count"])
}

func TestClearCart(t *testing.T) {
	c := setup(t)

	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})
	w, _ := c.do(http.MethodDelete, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := c.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.Equal(t, float64(0), dataOf(t, body)["count"])
}

func TestSessionsAreIsolated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cat, err := catalog.NewService("")
	require.NoError(t, err)
	sessions := order.NewSessions(cat, memory.NewSnapshotStore())
	engine := NewServer(testConfig(), cat, sessions, nil).Engine()

	alice := &client{t: t, engine: engine}
	bob := &client{t: t, engine: engine}

	alice.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})
	alice.do(http.MethodPost, "/api/v1/cart/items", gin.H{"item_id": 1})

	_, body := bob.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.Equal(t, float64(0), dataOf(t, body)["count"])

	_, body = alice.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.Equal(t, float64(2), dataOf(t, body)["count"])
}

func TestInfoEndpoint(t *testing.T) {
	c := setup(t)

	w, body := c.do(http.MethodGet, "/api/v1/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataOf(t, body)
	assert.Equal(t, "Mano Bakers", data["name"])
	contact := data["whatsapp_contact"].(string)
	assert.True(t, strings.HasPrefix(contact, "https://wa.me/message/TESTLINK?src=qr&text="))
	assert.NotContains(t, contact, "+")
}
