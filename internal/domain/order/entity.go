// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/manobakers/bakery-backend/internal/domain/catalog"
)

// OrderType selects how an order is fulfilled
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// PickupTiming selects when a pickup order is collected
type PickupTiming string

const (
	PickupNow   PickupTiming = "now"
	PickupLater PickupTiming = "later"
)

// CartLine is one catalog item paired with a quantity.
// A cart holds at most one line per item id; quantity is always >= 1.
type CartLine struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// Fulfillment holds the delivery-or-pickup details attached to an order
type Fulfillment struct {
	OrderType    OrderType    `json:"order_type"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	PickupTiming PickupTiming `json:"pickup_timing,omitempty"`
	ScheduledAt  *time.Time   `json:"scheduled_at,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// DefaultFulfillment returns the fulfillment state a fresh session starts
// with and a cleared cart resets to
func DefaultFulfillment() Fulfillment {
	return Fulfillment{
		OrderType:    OrderTypeDelivery,
		PickupTiming: PickupNow,
	}
}

// OrderLine is a cart line with its item resolved against the catalog,
// captured at submit time
type OrderLine struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
	Subtotal int64        `json:"subtotal"`
}

// Order is the immutable snapshot captured when a cart is submitted.
// It is returned to the caller and never persisted.
type Order struct {
	OrderNumber string      `json:"order_number"`
	PlacedAt    time.Time   `json:"placed_at"`
	Lines       []OrderLine `json:"lines"`
	Fulfillment Fulfillment `json:"fulfillment"`
	TotalItems  int         `json:"total_items"`
	TotalPrice  int64       `json:"total_price"`
}

// Snapshot is the persisted session state: cart lines plus fulfillment.
// It is written on every mutation and read once when a session starts.
type Snapshot struct {
	Lines       []CartLine  `json:"lines"`
	Fulfillment Fulfillment `json:"fulfillment"`
}
