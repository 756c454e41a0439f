package bot

import (
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momo-store/services"
)

const anonymousName = "Telegram customer"

type view int

const (
	viewNone view = iota
	viewMenu
	viewCart
)

// inputStep is the free-text answer the chat is waiting for.
type inputStep int

const (
	inputNone inputStep = iota
	inputName
	inputPhone
	inputEmail
	inputAddress
	inputContactPhone
)

// session is one chat's storefront: its cart, feeds and checkout. mu guards
// the fields below it and is never held while the cart changes or a request
// is in flight.
type session struct {
	chatID  int64
	cart    *services.CartStore
	menu    *services.MenuFeed
	reviews *services.ReviewFeed
	unsub   func()

	mu          sync.Mutex
	name        string
	view        view
	viewMsgID   int
	flow        *services.Flow
	checkoutMsg int
	input       inputStep
	contactText string
}

func (s *session) currentView() (view, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.viewMsgID
}

func (s *session) setView(v view, msgID int) {
	s.mu.Lock()
	s.view, s.viewMsgID = v, msgID
	s.mu.Unlock()
}

// checkout returns the live flow and its payment message, nil once closed.
func (s *session) checkout() (*services.Flow, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil || s.flow.Closed() {
		return nil, 0
	}
	return s.flow, s.checkoutMsg
}

func (s *session) setInput(step inputStep) {
	s.mu.Lock()
	s.input = step
	s.mu.Unlock()
}

func (s *session) pendingInput() inputStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// resetCheckout closes the flow, cancelling a pending cart clear.
func (s *session) resetCheckout() {
	s.mu.Lock()
	flow := s.flow
	s.flow = nil
	s.checkoutMsg = 0
	if s.input != inputContactPhone {
		s.input = inputNone
	}
	s.mu.Unlock()
	if flow != nil {
		flow.Close()
	}
}

func (s *session) close() {
	s.resetCheckout()
	if s.unsub != nil {
		s.unsub()
	}
}

// userName is the user's full name, or @username when both names are blank.
func userName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if n := strings.TrimSpace(u.FirstName + " " + u.LastName); n != "" {
		return n
	}
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return ""
}

// session returns the chat's session, creating it on first contact.
func (b *Bot) session(chatID int64, from *tgbotapi.User) *session {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	if s, ok := b.sessions[chatID]; ok {
		if n := userName(from); n != "" {
			s.mu.Lock()
			s.name = n
			s.mu.Unlock()
		}
		return s
	}
	s := &session{
		chatID:  chatID,
		name:    userName(from),
		cart:    services.NewCartStore(),
		menu:    services.NewMenuFeed(b.backend),
		reviews: services.NewReviewFeed(b.backend, b.cfg.API.ReviewsLimit),
	}
	s.unsub = s.cart.Subscribe(func(c services.Cart) { b.refresh(s, c) })
	b.sessions[chatID] = s
	return s
}

func (s *session) displayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// signature is the name reviews and contact messages are sent under.
func (s *session) signature() string {
	if n := s.displayName(); n != "" {
		return n
	}
	return anonymousName
}

// refresh re-renders the open view and the payment step after a cart change.
func (b *Bot) refresh(s *session, cart services.Cart) {
	v, msgID := s.currentView()
	switch v {
	case viewMenu:
		kb := menuKeyboard(s.menu.State(), cart)
		b.edit(s.chatID, msgID, menuText(s.menu.State(), cart), &kb)
	case viewCart:
		kb := cartKeyboard(cart, b.whatsAppOrderLink(cart))
		b.edit(s.chatID, msgID, cartText(cart), &kb)
	}
	if flow, msgID := s.checkout(); flow != nil && msgID != 0 {
		if st := flow.State(); st.Step == services.StepPayment {
			b.renderPayment(s.chatID, msgID, st, "")
		}
	}
}

func (b *Bot) whatsAppOrderLink(cart services.Cart) string {
	if b.cfg.Telegram.WhatsAppNumber == "" {
		return ""
	}
	link, ok := services.OrderLink(b.cfg.Telegram.WhatsAppNumber, b.restaurantName(), cart)
	if !ok {
		return ""
	}
	return link
}
