package bot

import (
	"context"
	"fmt"

	"momo-store/services"
)

// showMenu loads the menu into editMsgID, or a new message when it is 0.
func (b *Bot) showMenu(ctx context.Context, s *session, editMsgID int) {
	s.cart.SetOpen(false)
	msgID := b.placeholder(s.chatID, editMsgID, textMenuLoading)
	s.setView(viewMenu, msgID)
	st := s.menu.Load(ctx)
	b.renderMenu(s, msgID, st)
}

func (b *Bot) retryMenu(ctx context.Context, s *session, msgID int) {
	b.edit(s.chatID, msgID, textMenuLoading, nil)
	s.setView(viewMenu, msgID)
	st := s.menu.Retry(ctx)
	b.renderMenu(s, msgID, st)
}

func (b *Bot) renderMenu(s *session, msgID int, st services.MenuState) {
	cart := s.cart.Snapshot()
	kb := menuKeyboard(st, cart)
	b.edit(s.chatID, msgID, menuText(st, cart), &kb)
}

func (b *Bot) selectCategory(s *session, msgID int, categoryID int64) bool {
	if !s.menu.Select(categoryID) {
		return false
	}
	s.setView(viewMenu, msgID)
	b.renderMenu(s, msgID, s.menu.State())
	return true
}

// addItem puts a loaded menu item in the cart. The open view is re-rendered
// by the cart subscription.
func (b *Bot) addItem(s *session, itemID int64) (string, bool) {
	item, ok := s.menu.Item(itemID)
	if !ok {
		return "", false
	}
	s.cart.Add(item)
	return fmt.Sprintf("Added %s", item.Name), true
}

// showCart renders the cart into editMsgID, or a new message when it is 0.
func (b *Bot) showCart(s *session, editMsgID int) {
	cart := s.cart.Snapshot()
	kb := cartKeyboard(cart, b.whatsAppOrderLink(cart))
	msgID := editMsgID
	if msgID == 0 {
		msgID = b.sendWithInline(s.chatID, cartText(cart), kb)
	} else {
		b.edit(s.chatID, msgID, cartText(cart), &kb)
	}
	s.setView(viewCart, msgID)
	s.cart.SetOpen(true)
}

func (b *Bot) changeQuantity(s *session, itemID int64, delta int) {
	s.cart.UpdateQuantity(itemID, s.cart.Quantity(itemID)+delta)
}

func (b *Bot) showReviews(ctx context.Context, s *session, editMsgID int) {
	msgID := b.placeholder(s.chatID, editMsgID, textReviewsLoading)
	st := s.reviews.Load(ctx)
	b.edit(s.chatID, msgID, reviewsText(st), reviewsKeyboard(st))
}

func (b *Bot) retryReviews(ctx context.Context, s *session, msgID int) {
	b.edit(s.chatID, msgID, textReviewsLoading, nil)
	st := s.reviews.Retry(ctx)
	b.edit(s.chatID, msgID, reviewsText(st), reviewsKeyboard(st))
}

// placeholder shows a loading text and returns the message it is in.
func (b *Bot) placeholder(chatID int64, editMsgID int, text string) int {
	if editMsgID != 0 {
		b.edit(chatID, editMsgID, text, nil)
		return editMsgID
	}
	return b.send(chatID, text)
}
