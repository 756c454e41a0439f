package services

import (
	"fmt"
	"strings"

	"momo-store/models"
)

// OrderCardButton is one inline button (text + callback_data or url).
type OrderCardButton struct {
	Text         string
	CallbackData string
	URL          string // if set, use as URL button instead of callback
}

// OrderCardContent is the text and optional inline keyboard for an order card.
type OrderCardContent struct {
	Text    string
	Buttons [][]OrderCardButton
}

func statusLabel(status string) string {
	switch status {
	case models.OrderStatusPending:
		return "Received"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(status[:1]) + strings.ReplaceAll(status[1:], "_", " ")
	}
}

// PaymentLabel is the display name of a payment method.
func PaymentLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentRazorpay:
		return "Razorpay"
	case models.PaymentPhonePe:
		return "PhonePe"
	case models.PaymentCOD:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

func writeOrderLines(b *strings.Builder, o *models.Order) {
	for _, it := range o.Items {
		fmt.Fprintf(b, "• %s x%d - ₹%d\n", it.Name, it.Quantity, it.Price*int64(it.Quantity))
	}
	fmt.Fprintf(b, "\nSubtotal: ₹%d\n", o.Subtotal)
	if o.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(b, "Delivery: ₹%d\n", o.DeliveryCharge)
	}
	fmt.Fprintf(b, "Total: ₹%d\n", o.Total)
}

// BuildAdminCard is the new-order notification for the restaurant. The button
// opens a WhatsApp chat with the customer.
func BuildAdminCard(o *models.Order) OrderCardContent {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 New order %s\n\n", o.OrderID)
	fmt.Fprintf(&b, "👤 %s\n📞 %s\n", o.CustomerName, o.CustomerPhone)
	if o.CustomerEmail != nil {
		fmt.Fprintf(&b, "✉️ %s\n", *o.CustomerEmail)
	}
	if o.DeliveryType == models.DeliveryTypeDelivery && o.DeliveryAddress != nil {
		fmt.Fprintf(&b, "🚚 Delivery to: %s\n", *o.DeliveryAddress)
	} else {
		b.WriteString("🏪 Pickup\n")
	}
	b.WriteString("\n")
	writeOrderLines(&b, o)
	fmt.Fprintf(&b, "Payment: %s (%s)", PaymentLabel(o.PaymentMethod), o.PaymentStatus)

	return OrderCardContent{
		Text: b.String(),
		Buttons: [][]OrderCardButton{
			{{Text: "💬 WhatsApp customer", URL: WhatsAppURL(o.CustomerPhone, "")}},
		},
	}
}

// BuildCustomerCard shows an order to the customer. With a restaurant number
// it adds a WhatsApp button about the order.
func BuildCustomerCard(o *models.Order, whatsapp string) OrderCardContent {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Order %s\n\n", o.OrderID)
	writeOrderLines(&b, o)
	fmt.Fprintf(&b, "\nPayment: %s\n", PaymentLabel(o.PaymentMethod))
	fmt.Fprintf(&b, "Status: %s", statusLabel(o.OrderStatus))

	var buttons [][]OrderCardButton
	if whatsapp != "" {
		msg := fmt.Sprintf("Hi! I have a question about my order %s.", o.OrderID)
		buttons = [][]OrderCardButton{{{Text: "💬 Ask on WhatsApp", URL: WhatsAppURL(whatsapp, msg)}}}
	}
	return OrderCardContent{Text: b.String(), Buttons: buttons}
}
