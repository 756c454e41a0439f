package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"momo-store/client"
	"momo-store/config"
	"momo-store/models"
	"momo-store/services"
)

// Sender is the part of tgbotapi.BotAPI the storefront talks through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// API is the restaurant backend. client.Client implements it.
type API interface {
	services.CategorySource
	services.ReviewSource
	services.OrderCreator
	Order(ctx context.Context, orderID string) (*models.Order, error)
	CreateReview(ctx context.Context, in models.CreateReviewInput) (*models.Review, error)
	SendContact(ctx context.Context, in models.CreateContactInput) error
	RestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error)
}

const defaultRestaurant = "Delhi Tandoori Momo"

type Bot struct {
	tg         *tgbotapi.BotAPI
	api        Sender
	messageBot Sender // bot for sending order notifications (MESSAGE_TOKEN)
	backend    API
	cfg        *config.Config
	log        zerolog.Logger
	schedule   services.Scheduler
	throttle   *services.SubmissionThrottle

	restaurantMu sync.RWMutex
	restaurant   string

	sessionsMu sync.Mutex
	sessions   map[int64]*session
}

func New(cfg *config.Config, backend API) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	b := newBot(cfg, api, backend)
	b.tg = api
	// Initialize message bot if MESSAGE_TOKEN is set
	if cfg.Telegram.MessageToken != "" {
		messageBot, err := tgbotapi.NewBotAPI(cfg.Telegram.MessageToken)
		if err != nil {
			b.log.Warn().Err(err).Msg("failed to initialize message bot")
		} else {
			b.messageBot = messageBot
		}
	}
	return b, nil
}

func newBot(cfg *config.Config, api Sender, backend API) *Bot {
	return &Bot{
		api:        api,
		backend:    backend,
		cfg:        cfg,
		log:        log.With().Str("component", "bot").Logger(),
		restaurant: defaultRestaurant,
		throttle:   services.NewSubmissionThrottle(),
		sessions:   make(map[int64]*session),
	}
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Home"},
		tgbotapi.BotCommand{Command: "menu", Description: "Browse the menu"},
		tgbotapi.BotCommand{Command: "cart", Description: "Your cart"},
		tgbotapi.BotCommand{Command: "reviews", Description: "Customer reviews"},
		tgbotapi.BotCommand{Command: "info", Description: "Address and timings"},
		tgbotapi.BotCommand{Command: "order", Description: "Track an order: /order <id>"},
		tgbotapi.BotCommand{Command: "review", Description: "Rate us: /review <1-5> <text>"},
		tgbotapi.BotCommand{Command: "contact", Description: "Message us: /contact <text>"},
	)
	_, err := b.api.Request(cfg)
	return err
}

// Start polls for updates until ctx is cancelled. Updates are handled one at
// a time.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn().Err(err).Msg("set bot commands")
	}
	b.loadRestaurant(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.log.Info().Str("username", b.tg.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			b.closeSessions()
			return
		case update, ok := <-updates:
			if !ok {
				b.closeSessions()
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) loadRestaurant(ctx context.Context) {
	info, err := b.backend.RestaurantInfo(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("restaurant info unavailable, using default name")
		return
	}
	if info.EnglishName != "" {
		b.restaurantMu.Lock()
		b.restaurant = info.EnglishName
		b.restaurantMu.Unlock()
	}
}

func (b *Bot) restaurantName() string {
	b.restaurantMu.RLock()
	defer b.restaurantMu.RUnlock()
	return b.restaurant
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message == nil || update.CallbackQuery.From == nil {
			return
		}
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	s := b.session(msg.Chat.ID, msg.From)
	if msg.Contact != nil {
		b.handleInput(ctx, s, msg.Contact.PhoneNumber)
		return
	}
	if !msg.IsCommand() {
		if !b.handleInput(ctx, s, strings.TrimSpace(msg.Text)) {
			b.send(s.chatID, "Use /menu to browse the menu or /cart to see your cart.")
		}
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start":
		b.handleStart(s)
	case "menu":
		b.showMenu(ctx, s, 0)
	case "cart":
		b.showCart(s, 0)
	case "reviews":
		b.showReviews(ctx, s, 0)
	case "info":
		b.handleInfo(ctx, s)
	case "order":
		b.handleOrder(ctx, s, args)
	case "review":
		b.handleReview(ctx, s, args)
	case "contact":
		b.handleContactCommand(s, args)
	default:
		b.send(s.chatID, "Unknown command. Try /menu.")
	}
}

func (b *Bot) send(chatID int64, text string) int {
	m, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send")
		return 0
	}
	return m.MessageID
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup any) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	m, err := b.api.Send(msg)
	if err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send")
		return 0
	}
	return m.MessageID
}

func (b *Bot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) int {
	return b.sendWithMarkup(chatID, text, kb)
}

// edit replaces the text and inline keyboard of a message. "message is not
// modified" is ignored.
func (b *Bot) edit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		return
	}
	cfg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	cfg.ReplyMarkup = kb
	if _, err := b.api.Send(cfg); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		b.log.Error().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("edit")
	}
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Debug().Err(err).Msg("answer callback")
	}
}

// userMessage is what the customer sees for err: local validation messages as
// they are, API and network failures in their friendly form.
func userMessage(err error) string {
	if services.IsValidation(err) {
		return err.Error()
	}
	return client.Message(err)
}

func (b *Bot) handleStart(s *session) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Menu", "menu"),
			tgbotapi.NewInlineKeyboardButtonData(cartButtonLabel(s.cart.Count()), "cart"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Reviews", "reviews"),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Info", "info"),
		),
	)
	text := "🙏 Welcome to " + b.restaurantName() + "!\n\nOrder our momos right here in the chat."
	b.sendWithInline(s.chatID, text, kb)
}

// notifyAdmin forwards a new order to ADMIN_ID through the message bot.
func (b *Bot) notifyAdmin(o *models.Order) {
	if b.messageBot == nil || b.cfg.Telegram.AdminID == 0 {
		return
	}
	card := services.BuildAdminCard(o)
	msg := tgbotapi.NewMessage(b.cfg.Telegram.AdminID, card.Text)
	if kb := cardMarkup(card); kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := b.messageBot.Send(msg); err != nil {
		b.log.Error().Err(err).Str("order_id", o.OrderID).Msg("notify admin")
	}
}

func (b *Bot) handleInfo(ctx context.Context, s *session) {
	info, err := b.backend.RestaurantInfo(ctx)
	if err != nil {
		b.send(s.chatID, userMessage(err))
		return
	}
	if b.cfg.Telegram.WhatsAppNumber == "" {
		b.send(s.chatID, infoText(info))
		return
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("💬 Chat on WhatsApp",
			services.WhatsAppURL(b.cfg.Telegram.WhatsAppNumber, services.EnquiryMessage(b.restaurantName()))),
	))
	b.sendWithInline(s.chatID, infoText(info), kb)
}

func (b *Bot) handleOrder(ctx context.Context, s *session, orderID string) {
	if orderID == "" {
		b.send(s.chatID, "Usage: /order <order id>")
		return
	}
	o, err := b.backend.Order(ctx, strings.ToUpper(orderID))
	if err != nil {
		b.send(s.chatID, userMessage(err))
		return
	}
	card := services.BuildCustomerCard(o, b.cfg.Telegram.WhatsAppNumber)
	if kb := cardMarkup(card); kb != nil {
		b.sendWithInline(s.chatID, card.Text, *kb)
		return
	}
	b.send(s.chatID, card.Text)
}

func (b *Bot) closeSessions() {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	for _, s := range b.sessions {
		s.close()
	}
}

func (b *Bot) now() time.Time {
	return time.Now()
}
