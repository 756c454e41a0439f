package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momo-store/models"
	"momo-store/services"
)

const (
	usageReview  = "Usage: /review <1-5> <your review>"
	usageContact = "Usage: /contact <your message>"
)

// handleReview submits "/review <rating> <text>" under the sender's name.
// Input is checked locally first so a bad review never reaches the API.
func (b *Bot) handleReview(ctx context.Context, s *session, args string) {
	ratingStr, text, _ := strings.Cut(args, " ")
	rating, err := strconv.Atoi(ratingStr)
	if err != nil {
		b.send(s.chatID, usageReview)
		return
	}
	in := models.CreateReviewInput{Name: s.signature(), Rating: rating, Review: strings.TrimSpace(text)}
	if _, err := services.NewReview(in, b.now()); err != nil {
		b.send(s.chatID, "⚠️ "+userMessage(err)+"\n"+usageReview)
		return
	}
	if b.throttled(s, services.ThrottleReview) {
		return
	}
	if _, err := b.backend.CreateReview(ctx, in); err != nil {
		b.send(s.chatID, userMessage(err))
		return
	}
	b.throttle.Record(s.chatID, services.ThrottleReview, b.now())
	b.send(s.chatID, "🙏 Thank you for your review! It will appear once approved.")
}

// handleContactCommand stores the message and asks for a phone number to
// reply on.
func (b *Bot) handleContactCommand(s *session, text string) {
	if text == "" {
		b.send(s.chatID, usageContact)
		return
	}
	if b.throttled(s, services.ThrottleContact) {
		return
	}
	s.mu.Lock()
	s.contactText = text
	s.mu.Unlock()
	b.ask(s, inputContactPhone, services.Details{})
}

func (b *Bot) finishContact(ctx context.Context, s *session, phone string) {
	name := s.signature()
	s.mu.Lock()
	in := models.CreateContactInput{Name: name, Phone: phone, Message: s.contactText}
	s.mu.Unlock()

	if _, err := services.NewContactMessage(in, b.now()); err != nil {
		b.send(s.chatID, "⚠️ "+userMessage(err))
		var ve *services.ValidationError
		if !errors.As(err, &ve) || ve.Field != "phone" {
			s.setInput(inputNone)
		}
		return
	}
	s.mu.Lock()
	s.input = inputNone
	s.contactText = ""
	s.mu.Unlock()

	if err := b.backend.SendContact(ctx, in); err != nil {
		b.sendWithMarkup(s.chatID, userMessage(err), tgbotapi.NewRemoveKeyboard(true))
		return
	}
	b.throttle.Record(s.chatID, services.ThrottleContact, b.now())
	b.sendWithMarkup(s.chatID, "✅ Thank you! We will get back to you soon.", tgbotapi.NewRemoveKeyboard(true))
}

// throttled tells the chat to wait when it submitted kind too recently.
func (b *Bot) throttled(s *session, kind string) bool {
	wait := b.throttle.WaitSeconds(s.chatID, kind, b.now())
	if wait == 0 {
		return false
	}
	b.send(s.chatID, fmt.Sprintf("⏳ Please wait %d seconds before sending again.", wait))
	return true
}
