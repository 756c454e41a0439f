package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momo-store/client"
	"momo-store/config"
	"momo-store/models"
	"momo-store/services"
)

const (
	testChat  int64 = 1001
	testAdmin int64 = 42
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) all() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]tgbotapi.Chattable, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeSender) last() tgbotapi.Chattable {
	all := f.all()
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func (f *fakeSender) lastText() string {
	return textOf(f.last())
}

func textOf(c tgbotapi.Chattable) string {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	}
	return ""
}

func callbacksOf(c tgbotapi.Chattable) []string {
	var kb *tgbotapi.InlineKeyboardMarkup
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		if k, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); ok {
			kb = &k
		}
	case tgbotapi.EditMessageTextConfig:
		kb = m.ReplyMarkup
	}
	if kb == nil {
		return nil
	}
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				out = append(out, *btn.CallbackData)
			}
		}
	}
	return out
}

type fakeBackend struct {
	mu         sync.Mutex
	categories []models.MenuCategory
	menuErr    error
	orders     []models.CreateOrderInput
	orderErr   error
	reviews    []models.CreateReviewInput
	contacts   []models.CreateContactInput
}

func (f *fakeBackend) Categories(context.Context) ([]models.MenuCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories, f.menuErr
}

func (f *fakeBackend) Reviews(context.Context, int) ([]models.Review, error) {
	return []models.Review{{Name: "Rahul Kumar", Rating: 5, Review: "Amazing taste!", Avatar: "RK", Date: "2 weeks ago"}}, nil
}

func (f *fakeBackend) CreateOrder(_ context.Context, in models.CreateOrderInput) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, in)
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	sub := services.CalcSubtotal(in.Items)
	charge := services.CalcDeliveryCharge(in.DeliveryType, 30)
	return &models.Order{
		OrderID:        "ORD1A2B3C4D",
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		DeliveryType:   in.DeliveryType,
		Items:          in.Items,
		Subtotal:       sub,
		DeliveryCharge: charge,
		Total:          sub + charge,
		PaymentMethod:  in.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		OrderStatus:    models.OrderStatusPending,
	}, nil
}

func (f *fakeBackend) Order(_ context.Context, orderID string) (*models.Order, error) {
	if orderID != "ORD1A2B3C4D" {
		return nil, &client.APIError{Status: 404, Detail: "Order not found"}
	}
	return &models.Order{OrderID: orderID, Items: []models.OrderItem{{ItemID: 101, Name: "Veg Tandoori Momos", Price: 120, Quantity: 1}},
		Subtotal: 120, Total: 120, DeliveryType: models.DeliveryTypePickup, PaymentMethod: models.PaymentCOD, OrderStatus: "preparing"}, nil
}

func (f *fakeBackend) CreateReview(_ context.Context, in models.CreateReviewInput) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, in)
	return &models.Review{Name: in.Name, Rating: in.Rating, Review: in.Review}, nil
}

func (f *fakeBackend) SendContact(_ context.Context, in models.CreateContactInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, in)
	return nil
}

func (f *fakeBackend) RestaurantInfo(context.Context) (*models.RestaurantInfo, error) {
	return &models.RestaurantInfo{Name: "दिल्ली तंदूरी मोमो", EnglishName: "Delhi Tandoori Momo", Rating: 4.5, TotalReviews: 104,
		Address: "Zila School Rd, Bhagalpur", Phone: "8873652662"}, nil
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) schedule(_ time.Duration, fn func()) services.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fire() {
	c.mu.Lock()
	timers := append([]*fakeTimer(nil), c.timers...)
	c.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

var testMenu = []models.MenuCategory{
	{ID: 1, Name: "Tandoori Momos", Items: []models.MenuItem{
		{ID: 101, Name: "Veg Tandoori Momos", Price: 120, IsVeg: true},
		{ID: 102, Name: "Paneer Tandoori Momos", Price: 150, IsVeg: true},
	}},
	{ID: 2, Name: "Afghani Momos", Items: []models.MenuItem{
		{ID: 201, Name: "Veg Afghani Momos", Price: 130, IsVeg: true},
	}},
}

type harness struct {
	bot     *Bot
	sender  *fakeSender
	admin   *fakeSender
	backend *fakeBackend
	clock   *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{
		API:      config.APIConfig{ReviewsLimit: 10},
		Telegram: config.TelegramConfig{AdminID: testAdmin, WhatsAppNumber: "8873652662"},
		Checkout: config.CheckoutConfig{DeliveryCharge: 30, ConfirmDelay: 3 * time.Second},
	}
	h := &harness{
		sender:  &fakeSender{},
		admin:   &fakeSender{},
		backend: &fakeBackend{categories: testMenu},
		clock:   &fakeClock{},
	}
	h.bot = newBot(cfg, h.sender, h.backend)
	h.bot.messageBot = h.admin
	h.bot.schedule = h.clock.schedule
	return h
}

var testUser = &tgbotapi.User{ID: testChat, FirstName: "Priya", LastName: "Singh"}

func (h *harness) command(text string) {
	cmd, _, _ := strings.Cut(text, " ")
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      testUser,
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}})
}

func (h *harness) text(text string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      testUser,
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
	}})
}

func (h *harness) shareContact(phone string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      testUser,
		Chat:      &tgbotapi.Chat{ID: testChat},
		Contact:   &tgbotapi.Contact{PhoneNumber: phone},
	}})
}

func (h *harness) click(msgID int, data string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    testUser,
		Message: &tgbotapi.Message{MessageID: msgID, Chat: &tgbotapi.Chat{ID: testChat}},
		Data:    data,
	}})
}

func (h *harness) session() *session {
	h.bot.sessionsMu.Lock()
	defer h.bot.sessionsMu.Unlock()
	return h.bot.sessions[testChat]
}

// openMenu runs /menu and returns the id of the menu message.
func (h *harness) openMenu(t *testing.T) int {
	t.Helper()
	h.command("/menu")
	s := h.session()
	require.NotNil(t, s)
	v, msgID := s.currentView()
	require.Equal(t, viewMenu, v)
	return msgID
}

func TestMenuShowsActiveCategory(t *testing.T) {
	h := newHarness(t)
	h.openMenu(t)

	last := h.sender.last()
	assert.Contains(t, textOf(last), "Veg Tandoori Momos")
	assert.NotContains(t, textOf(last), "Veg Afghani Momos")
	assert.Subset(t, callbacksOf(last), []string{"cat:1", "cat:2", "add:101", "add:102", "cart"})
}

func TestMenuSelectAndAdd(t *testing.T) {
	h := newHarness(t)
	menuMsg := h.openMenu(t)

	h.click(menuMsg, "cat:2")
	assert.Contains(t, h.sender.lastText(), "Veg Afghani Momos")
	assert.Contains(t, callbacksOf(h.sender.last()), "add:201")

	h.click(menuMsg, "add:201")
	h.click(menuMsg, "add:201")
	s := h.session()
	assert.Equal(t, 2, s.cart.Quantity(201))
	assert.Contains(t, h.sender.lastText(), "2 in cart, ₹260")

	// items outside the loaded menu are refused
	h.click(menuMsg, "add:999")
	assert.Equal(t, 2, s.cart.Count())
}

func TestMenuErrorAndRetry(t *testing.T) {
	h := newHarness(t)
	h.backend.menuErr = errors.New("boom")
	menuMsg := h.openMenu(t)

	assert.Equal(t, "⚠️ "+services.MenuUnavailable, h.sender.lastText())
	assert.Equal(t, []string{"menu:retry"}, callbacksOf(h.sender.last()))

	h.backend.mu.Lock()
	h.backend.menuErr = nil
	h.backend.mu.Unlock()
	h.click(menuMsg, "menu:retry")
	assert.Contains(t, h.sender.lastText(), "Tandoori Momos")
}

func TestMenuEmpty(t *testing.T) {
	h := newHarness(t)
	h.backend.categories = nil
	h.openMenu(t)
	assert.Equal(t, textNoMenu, h.sender.lastText())
}

func TestCartQuantityButtons(t *testing.T) {
	h := newHarness(t)
	menuMsg := h.openMenu(t)
	h.click(menuMsg, "add:101")
	h.click(menuMsg, "cart")

	s := h.session()
	v, _ := s.currentView()
	assert.Equal(t, viewCart, v)
	assert.True(t, s.cart.IsOpen())
	assert.Subset(t, callbacksOf(h.sender.last()), []string{"dec:101", "inc:101", "rm:101", "checkout", "clear"})

	h.click(menuMsg, "inc:101")
	assert.Equal(t, 2, s.cart.Quantity(101))
	assert.Contains(t, h.sender.lastText(), "Total: ₹240")

	h.click(menuMsg, "dec:101")
	h.click(menuMsg, "dec:101")
	assert.Zero(t, s.cart.Count())
	assert.Equal(t, textCartEmpty, h.sender.lastText())

	h.click(menuMsg, "add:102")
	h.click(menuMsg, "rm:102")
	assert.Zero(t, s.cart.Count())
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newHarness(t)
	h.command("/cart")
	h.click(1, "checkout")
	flow, _ := h.session().checkout()
	assert.Nil(t, flow)
}

// checkoutToPayment drives a pickup checkout up to the payment step.
func checkoutToPayment(t *testing.T, h *harness) *services.Flow {
	t.Helper()
	menuMsg := h.openMenu(t)
	h.click(menuMsg, "add:101")
	h.click(menuMsg, "add:101")
	h.click(menuMsg, "add:201")
	h.click(menuMsg, "checkout")
	h.click(menuMsg, "dt:pickup")
	assert.Contains(t, h.sender.lastText(), "Priya Singh")
	h.click(menuMsg, "skip")
	h.text("9876543210")
	h.click(menuMsg, "skip")

	flow, msgID := h.session().checkout()
	require.NotNil(t, flow)
	require.NotZero(t, msgID)
	require.Equal(t, services.StepPayment, flow.Step())
	return flow
}

func TestCheckoutPickupPlacesOrder(t *testing.T) {
	h := newHarness(t)
	flow := checkoutToPayment(t, h)

	summary := h.sender.lastText()
	assert.Contains(t, summary, "🏪 Pickup")
	assert.Contains(t, summary, "Total: ₹370")
	assert.NotContains(t, summary, "Delivery:")

	h.click(0, "pay:cod")
	assert.Contains(t, h.sender.lastText(), "Paying with Cash on Delivery")

	h.click(0, "place")
	require.Len(t, h.backend.orders, 1)
	in := h.backend.orders[0]
	assert.Equal(t, "Priya Singh", in.CustomerName)
	assert.Equal(t, "9876543210", in.CustomerPhone)
	assert.Nil(t, in.CustomerEmail)
	assert.Nil(t, in.DeliveryAddress)
	assert.Equal(t, models.DeliveryTypePickup, in.DeliveryType)
	assert.Len(t, in.Items, 2)

	assert.Contains(t, h.sender.lastText(), "ORD1A2B3C4D")
	assert.Equal(t, services.StepConfirmation, flow.Step())
	assert.Equal(t, 3, h.session().cart.Count())

	adminMsg, ok := h.admin.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, testAdmin, adminMsg.ChatID)
	assert.Contains(t, adminMsg.Text, "New order ORD1A2B3C4D")

	h.clock.fire()
	assert.Zero(t, h.session().cart.Count())
	assert.Equal(t, textCartClosed, h.sender.lastText())
	closed, _ := h.session().checkout()
	assert.Nil(t, closed)
}

func TestCheckoutDeliveryNeedsAddress(t *testing.T) {
	h := newHarness(t)
	menuMsg := h.openMenu(t)
	h.click(menuMsg, "add:101")
	h.click(menuMsg, "checkout")
	h.click(menuMsg, "dt:delivery")
	h.text("Rahul")
	h.shareContact("+919876543210")
	h.text("rahul@example.com")
	assert.Equal(t, inputAddress, h.session().pendingInput())
	h.text("Zila School Rd")

	flow, _ := h.session().checkout()
	require.NotNil(t, flow)
	st := flow.State()
	assert.Equal(t, services.StepPayment, st.Step)
	assert.Equal(t, int64(30), st.DeliveryCharge)
	assert.Equal(t, int64(150), st.Total)
	assert.Equal(t, "Rahul", st.Details.Name)
	assert.Contains(t, h.sender.lastText(), "Delivery: ₹30")
}

func TestPlaceOrderWithoutPaymentMethod(t *testing.T) {
	h := newHarness(t)
	flow := checkoutToPayment(t, h)

	h.click(0, "place")
	assert.Empty(t, h.backend.orders)
	assert.Contains(t, h.sender.lastText(), services.ErrNoPaymentMethod.Message)
	assert.Equal(t, services.StepPayment, flow.Step())
}

func TestPlaceOrderFailureKeepsPaymentStep(t *testing.T) {
	h := newHarness(t)
	h.backend.orderErr = &client.APIError{Status: 500, Detail: "Failed to create order"}
	flow := checkoutToPayment(t, h)

	h.click(0, "pay:phonepe")
	h.click(0, "place")
	assert.Equal(t, services.StepPayment, flow.Step())
	assert.Contains(t, h.sender.lastText(), "⚠️ Failed to create order")
	assert.Contains(t, callbacksOf(h.sender.last()), "place")
	assert.Empty(t, h.admin.all())
	assert.Equal(t, 3, h.session().cart.Count())

	h.backend.mu.Lock()
	h.backend.orderErr = nil
	h.backend.mu.Unlock()
	h.click(0, "place")
	assert.Equal(t, services.StepConfirmation, flow.Step())
	assert.Len(t, h.backend.orders, 2)
}

func TestCancelAfterConfirmationKeepsCart(t *testing.T) {
	h := newHarness(t)
	checkoutToPayment(t, h)
	h.click(0, "pay:razorpay")
	h.click(0, "place")

	h.click(0, "cancel")
	h.clock.fire()
	assert.Equal(t, 3, h.session().cart.Count())
	assert.NotEqual(t, textCartClosed, h.sender.lastText())
}

func TestBackReturnsToDetails(t *testing.T) {
	h := newHarness(t)
	flow := checkoutToPayment(t, h)
	h.click(0, "back")
	assert.Equal(t, services.StepDetails, flow.Step())
	assert.Equal(t, "9876543210", flow.Details().Phone)
	assert.Subset(t, callbacksOf(h.sender.last()), []string{"dt:delivery", "dt:pickup"})
}

func TestReviewCommand(t *testing.T) {
	h := newHarness(t)
	h.command("/review 7 Too good")
	assert.Empty(t, h.backend.reviews)
	assert.Contains(t, h.sender.lastText(), "Rating must be between 1 and 5")

	h.command("/review five stars")
	assert.Equal(t, usageReview, h.sender.lastText())

	h.command("/review 5 Best momos in Bhagalpur")
	require.Len(t, h.backend.reviews, 1)
	assert.Equal(t, models.CreateReviewInput{Name: "Priya Singh", Rating: 5, Review: "Best momos in Bhagalpur"}, h.backend.reviews[0])

	h.command("/review 4 Posting again")
	assert.Len(t, h.backend.reviews, 1)
	assert.Contains(t, h.sender.lastText(), "Please wait")
}

func TestContactCommand(t *testing.T) {
	h := newHarness(t)
	h.command("/contact")
	assert.Equal(t, usageContact, h.sender.lastText())

	h.command("/contact Do you cater for parties?")
	assert.Equal(t, inputContactPhone, h.session().pendingInput())
	h.shareContact("9876543210")

	require.Len(t, h.backend.contacts, 1)
	assert.Equal(t, "Do you cater for parties?", h.backend.contacts[0].Message)
	assert.Equal(t, "Priya Singh", h.backend.contacts[0].Name)
	assert.Equal(t, inputNone, h.session().pendingInput())
}

func TestContactWithoutTelegramName(t *testing.T) {
	h := newHarness(t)
	nameless := &tgbotapi.User{ID: 2002}
	chat := &tgbotapi.Chat{ID: 2002}
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      nameless,
		Chat:      chat,
		Text:      "/contact Is the shop open on Sunday?",
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len("/contact")}},
	}})
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      nameless,
		Chat:      chat,
		Contact:   &tgbotapi.Contact{PhoneNumber: "9876543210"},
	}})

	require.Len(t, h.backend.contacts, 1)
	assert.Equal(t, anonymousName, h.backend.contacts[0].Name)
	assert.Equal(t, "Is the shop open on Sunday?", h.backend.contacts[0].Message)
}

func TestUserNameFallsBackToUsername(t *testing.T) {
	assert.Equal(t, "Priya Singh", userName(testUser))
	assert.Equal(t, "@momo_fan", userName(&tgbotapi.User{UserName: "momo_fan"}))
	assert.Equal(t, "", userName(&tgbotapi.User{}))
	assert.Equal(t, "", userName(nil))
}

func TestOrderCommand(t *testing.T) {
	h := newHarness(t)
	h.command("/order ord1a2b3c4d")
	assert.Contains(t, h.sender.lastText(), "Status: Preparing")

	h.command("/order ORDMISSING")
	assert.Equal(t, "Order not found", h.sender.lastText())
}

func TestReviewsCommand(t *testing.T) {
	h := newHarness(t)
	h.command("/reviews")
	assert.Contains(t, h.sender.lastText(), "Amazing taste!")
	assert.Contains(t, h.sender.lastText(), "⭐⭐⭐⭐⭐")
}
