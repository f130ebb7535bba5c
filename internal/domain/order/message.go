// internal/domain/order/message.go
package order

import (
	"fmt"
	"net/url"
	"strings"
)

const lineSeparator = "━━━━━━━━━━━━━━━━━━━━"

// Summary renders the order as the human-readable WhatsApp message. The
// output is fully determined by the snapshot: same order, same string.
func (o *Order) Summary() string {
	var b strings.Builder

	b.WriteString("🛒 *NEW ORDER - Mano Bakers*\n\n")
	fmt.Fprintf(&b, "📅 Date: %s\n", o.PlacedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "🕐 Time: %s\n", o.PlacedAt.Format("15:04"))
	fmt.Fprintf(&b, "🔢 Order #: %s\n\n", o.OrderNumber)

	switch o.Fulfillment.OrderType {
	case OrderTypePickup:
		b.WriteString("📋 *Order Type:* Pickup\n")
		fmt.Fprintf(&b, "⏰ *Pickup Time:* %s\n", o.pickupTimeLabel())
	default:
		b.WriteString("📋 *Order Type:* Delivery\n")
		fmt.Fprintf(&b, "📍 *Delivery Address:* %s\n", orValue(o.Fulfillment.Address, "Not provided"))
		fmt.Fprintf(&b, "📞 *Contact Number:* %s\n", orValue(o.Fulfillment.Phone, "Not provided"))
	}

	if notes := strings.TrimSpace(o.Fulfillment.Notes); notes != "" {
		fmt.Fprintf(&b, "📝 *Special Notes:* %s\n", notes)
	}

	b.WriteString("\n📋 *Order Details:*\n")
	b.WriteString(lineSeparator + "\n")

	for i, line := range o.Lines {
		fmt.Fprintf(&b, "\n*Item %d:*\n", i+1)
		fmt.Fprintf(&b, "📦 Code: *%s*\n", line.Item.Code)
		fmt.Fprintf(&b, "🍰 Item: %s\n", line.Item.Name)
		fmt.Fprintf(&b, "📊 Qty: %d\n", line.Quantity)
		fmt.Fprintf(&b, "💰 Price: Rs. %s each\n", formatAmount(line.Item.Price))
		fmt.Fprintf(&b, "💵 Subtotal: Rs. %s\n", formatAmount(line.Subtotal))
		b.WriteString(lineSeparator + "\n")
	}

	fmt.Fprintf(&b, "\n💰 *TOTAL: Rs. %s*\n", formatAmount(o.TotalPrice))
	fmt.Fprintf(&b, "📦 *Total Items: %d*\n\n", o.TotalItems)

	if o.Fulfillment.OrderType == OrderTypeDelivery {
		fmt.Fprintf(&b, "💳 Please send us the payment receipt for Rs. %s to our WhatsApp.\n\n", formatAmount(o.TotalPrice))
	}

	b.WriteString("📞 Please confirm this order and let me know if you need any changes.\n\n")
	b.WriteString("Thank you for choosing Mano Bakers! 🙏")

	return b.String()
}

// HandoffLink appends the percent-encoded summary to the configured
// WhatsApp target as its text query parameter
func (o *Order) HandoffLink(baseTarget string) string {
	sep := "?"
	if strings.Contains(baseTarget, "?") {
		sep = "&"
	}
	return baseTarget + sep + "text=" + encodeMessageText(o.Summary())
}

func (o *Order) pickupTimeLabel() string {
	if o.Fulfillment.PickupTiming != PickupLater {
		return "Now"
	}
	if o.Fulfillment.ScheduledAt == nil {
		return "Later - Not specified"
	}
	return "Later - " + o.Fulfillment.ScheduledAt.Format("02/01/2006 15:04")
}

func orValue(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// encodeMessageText percent-encodes the message for a query parameter.
// Spaces must become %20, not +, or WhatsApp renders literal plus signs.
func encodeMessageText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// formatAmount renders a rupee amount with comma thousands separators
func formatAmount(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	if amount < 0 {
		return "-" + formatAmount(-amount)
	}
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
