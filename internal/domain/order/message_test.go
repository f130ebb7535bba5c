// internal/domain/order/message_test.go
package order

import (
	"strings"
	"testing"
	"time"

	"github.com/manobakers/bakery-backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureOrder(f Fulfillment) *Order {
	return &Order{
		OrderNumber: "MB-20250315-1430-0042",
		PlacedAt:    time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
		Lines: []OrderLine{
			{
				Item:     catalog.Item{ID: 1, Code: "POP001", Name: "Chocolate Fudge Cake", Price: 1500},
				Quantity: 1,
				Subtotal: 1500,
			},
			{
				Item:     catalog.Item{ID: 3, Code: "POP003", Name: "Red Velvet Cupcakes", Price: 250},
				Quantity: 2,
				Subtotal: 500,
			},
		},
		Fulfillment: f,
		TotalItems:  3,
		TotalPrice:  2000,
	}
}

func TestSummaryIsDeterministic(t *testing.T) {
	o := fixtureOrder(Fulfillment{
		OrderType: OrderTypeDelivery,
		Address:   "123 Baker Street, Colombo 07",
		Phone:     "0712345678",
	})

	assert.Equal(t, o.Summary(), o.Summary())
}

func TestSummaryDelivery(t *testing.T) {
	o := fixtureOrder(Fulfillment{
		OrderType: OrderTypeDelivery,
		Address:   "123 Baker Street, Colombo 07",
		Phone:     "0712345678",
		Notes:     "Ring the doorbell twice",
	})

	s := o.Summary()

	assert.True(t, strings.HasPrefix(s, "🛒 *NEW ORDER - Mano Bakers*\n"))
	assert.Contains(t, s, "📅 Date: 15/03/2025\n")
	assert.Contains(t, s, "🕐 Time: 14:30\n")
	assert.Contains(t, s, "🔢 Order #: MB-20250315-1430-0042\n")
	assert.Contains(t, s, "📋 *Order Type:* Delivery\n")
	assert.Contains(t, s, "📍 *Delivery Address:* 123 Baker Street, Colombo 07\n")
	assert.Contains(t, s, "📞 *Contact Number:* 0712345678\n")
	assert.Contains(t, s, "📝 *Special Notes:* Ring the doorbell twice\n")

	assert.Contains(t, s, "*Item 1:*\n📦 Code: *POP001*\n🍰 Item: Chocolate Fudge Cake\n📊 Qty: 1\n💰 Price: Rs. 1,500 each\n💵 Subtotal: Rs. 1,500\n")
	assert.Contains(t, s, "*Item 2:*\n📦 Code: *POP003*\n🍰 Item: Red Velvet Cupcakes\n📊 Qty: 2\n💰 Price: Rs. 250 each\n💵 Subtotal: Rs. 500\n")

	assert.Contains(t, s, "💰 *TOTAL: Rs. 2,000*\n")
	assert.Contains(t, s, "📦 *Total Items: 3*\n")
	assert.Contains(t, s, "💳 Please send us the payment receipt for Rs. 2,000 to our WhatsApp.\n")
	assert.True(t, strings.HasSuffix(s, "Thank you for choosing Mano Bakers! 🙏"))

	// One separator after the header plus one per item line
	assert.Equal(t, 3, strings.Count(s, lineSeparator))
}

func TestSummaryDeliveryMissingDetails(t *testing.T) {
	o := fixtureOrder(Fulfillment{OrderType: OrderTypeDelivery})
	s := o.Summary()

	assert.Contains(t, s, "📍 *Delivery Address:* Not provided\n")
	assert.Contains(t, s, "📞 *Contact Number:* Not provided\n")
}

func TestSummaryPickupNow(t *testing.T) {
	o := fixtureOrder(Fulfillment{OrderType: OrderTypePickup, PickupTiming: PickupNow})
	s := o.Summary()

	assert.Contains(t, s, "📋 *Order Type:* Pickup\n")
	assert.Contains(t, s, "⏰ *Pickup Time:* Now\n")
	assert.NotContains(t, s, "Delivery Address")
	assert.NotContains(t, s, "payment receipt")
}

func TestSummaryPickupLater(t *testing.T) {
	at := time.Date(2025, 3, 20, 9, 15, 0, 0, time.UTC)
	o := fixtureOrder(Fulfillment{
		OrderType:    OrderTypePickup,
		PickupTiming: PickupLater,
		ScheduledAt:  &at,
	})

	assert.Contains(t, o.Summary(), "⏰ *Pickup Time:* Later - 20/03/2025 09:15\n")

	o.Fulfillment.ScheduledAt = nil
	assert.Contains(t, o.Summary(), "⏰ *Pickup Time:* Later - Not specified\n")
}

func TestHandoffLink(t *testing.T) {
	o := fixtureOrder(Fulfillment{OrderType: OrderTypePickup, PickupTiming: PickupNow})

	link := o.HandoffLink("https://wa.me/94771234567")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/94771234567?text="))

	// A pre-shared invite link already carrying a query gets & instead
	link = o.HandoffLink("https://wa.me/message/ABCDEF?ref=site")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/message/ABCDEF?ref=site&text="))

	// Spaces are %20, never +
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")
}

func TestEncodeMessageText(t *testing.T) {
	assert.Equal(t, "hello%20world", encodeMessageText("hello world"))
	assert.Equal(t, "a%0Ab", encodeMessageText("a\nb"))
	assert.Equal(t, "Rs.%201%2C500", encodeMessageText("Rs. 1,500"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{150, "150"},
		{1500, "1,500"},
		{25000, "25,000"},
		{100000, "100,000"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(tt.amount))
	}
}

func TestSummaryAfterSubmitMatchesPreview(t *testing.T) {
	agg, _ := newTestAggregator(t)

	require.NoError(t, agg.AddItem(1))
	agg.SetFulfillment(Fulfillment{OrderType: OrderTypePickup, PickupTiming: PickupNow})

	preview := agg.PreviewOrder().Summary()

	o, errs := agg.SubmitOrder()
	require.Empty(t, errs)
	assert.Equal(t, preview, o.Summary())
}
