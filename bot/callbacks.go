package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momo-store/models"
	"momo-store/services"
)

func parseID(data, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	s := b.session(cq.Message.Chat.ID, cq.From)
	msgID := cq.Message.MessageID
	data := cq.Data
	reply := ""

	switch {
	case data == "menu":
		b.answer(cq.ID, "")
		b.showMenu(ctx, s, 0)
		return
	case data == "menu:retry":
		b.answer(cq.ID, "")
		b.retryMenu(ctx, s, msgID)
		return
	case data == "reviews":
		b.answer(cq.ID, "")
		b.showReviews(ctx, s, 0)
		return
	case data == "reviews:retry":
		b.answer(cq.ID, "")
		b.retryReviews(ctx, s, msgID)
		return
	case data == "info":
		b.answer(cq.ID, "")
		b.handleInfo(ctx, s)
		return
	case strings.HasPrefix(data, "cat:"):
		id, ok := parseID(data, "cat:")
		if !ok || !b.selectCategory(s, msgID, id) {
			reply = "This category is no longer available"
		}
	case strings.HasPrefix(data, "add:"):
		id, ok := parseID(data, "add:")
		if ok {
			reply, ok = b.addItem(s, id)
		}
		if !ok {
			reply = "This item is no longer available"
		}
	case data == "cart":
		b.showCart(s, msgID)
	case strings.HasPrefix(data, "inc:"):
		if id, ok := parseID(data, "inc:"); ok {
			b.changeQuantity(s, id, 1)
		}
	case strings.HasPrefix(data, "dec:"):
		if id, ok := parseID(data, "dec:"); ok {
			b.changeQuantity(s, id, -1)
		}
	case strings.HasPrefix(data, "rm:"):
		if id, ok := parseID(data, "rm:"); ok {
			s.cart.Remove(id)
		}
	case data == "clear":
		s.cart.Clear()
		reply = "Cart cleared"
	case data == "checkout":
		if !b.startCheckout(s) {
			reply = services.ErrEmptyCart.Message
		}
	case strings.HasPrefix(data, "dt:"):
		reply = b.callbackError(b.chooseDeliveryType(s, models.DeliveryType(strings.TrimPrefix(data, "dt:"))))
	case data == "skip":
		b.skipField(s)
	case strings.HasPrefix(data, "pay:"):
		reply = b.callbackError(b.selectPayment(s, models.PaymentMethod(strings.TrimPrefix(data, "pay:"))))
	case data == "back":
		reply = b.callbackError(b.backToDetails(s))
	case data == "place":
		// the outcome is rendered in the payment message itself
		if err := b.placeOrder(ctx, s); errors.Is(err, services.ErrSubmitting) || errors.Is(err, services.ErrWrongStep) {
			reply = b.callbackError(err)
		}
	case data == "cancel":
		b.cancelCheckout(s)
	}
	b.answer(cq.ID, reply)
}

func (b *Bot) callbackError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, services.ErrSubmitting):
		return "Your order is being placed..."
	case errors.Is(err, services.ErrWrongStep):
		return "This checkout has ended. Open /cart to start again."
	default:
		return userMessage(err)
	}
}
