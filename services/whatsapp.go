package services

import (
	"fmt"
	"net/url"
	"strings"
)

// OrderMessage formats the cart as a WhatsApp order text. It returns "" for an
// empty cart.
func OrderMessage(restaurant string, cart Cart) string {
	if cart.Empty() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order from %s*\n\n", restaurant)
	for _, l := range cart.Lines {
		fmt.Fprintf(&b, "• %s x%d - ₹%d\n", l.Name, l.Quantity, l.Subtotal())
	}
	fmt.Fprintf(&b, "\n*Total: ₹%d*\n\nPlease confirm my order.", cart.Total())
	return b.String()
}

// EnquiryMessage is the prefilled text of the contact shortcut.
func EnquiryMessage(restaurant string) string {
	return fmt.Sprintf("Hi! I would like to know more about %s.", restaurant)
}

// WhatsAppURL builds a wa.me link for an Indian number. An empty message gives
// a plain chat link.
func WhatsAppURL(number, msg string) string {
	link := "https://wa.me/91" + strings.TrimPrefix(strings.TrimSpace(number), "+91")
	if msg == "" {
		return link
	}
	return link + "?text=" + url.QueryEscape(msg)
}

// OrderLink is the WhatsApp shortcut for sending the cart as an order. An
// empty cart has no link.
func OrderLink(number, restaurant string, cart Cart) (string, bool) {
	msg := OrderMessage(restaurant, cart)
	if msg == "" {
		return "", false
	}
	return WhatsAppURL(number, msg), true
}
