package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momo-store/models"
	"momo-store/services"
)

// startCheckout opens a fresh checkout for a non-empty cart and asks for the
// delivery type.
func (b *Bot) startCheckout(s *session) bool {
	if s.cart.Count() == 0 {
		return false
	}
	s.resetCheckout()

	var flow *services.Flow
	opts := []services.FlowOption{
		services.WithDeliveryCharge(b.cfg.Checkout.DeliveryCharge),
		services.WithConfirmDelay(b.cfg.Checkout.ConfirmDelay),
		services.WithOnClose(func() { b.checkoutClosed(s, flow) }),
	}
	if b.schedule != nil {
		opts = append(opts, services.WithScheduler(b.schedule))
	}
	flow = services.NewFlow(s.cart, b.backend, opts...)

	s.mu.Lock()
	s.flow = flow
	s.mu.Unlock()

	b.sendWithInline(s.chatID, "How would you like to get your order?", deliveryKeyboard(b.cfg.Checkout.DeliveryCharge))
	return true
}

// checkoutClosed runs once the confirmation delay has cleared the cart.
func (b *Bot) checkoutClosed(s *session, flow *services.Flow) {
	s.mu.Lock()
	current := s.flow == flow
	if current {
		s.flow = nil
		s.checkoutMsg = 0
	}
	s.mu.Unlock()
	if current {
		b.send(s.chatID, textCartClosed)
	}
}

func (b *Bot) chooseDeliveryType(s *session, t models.DeliveryType) error {
	flow, _ := s.checkout()
	if flow == nil {
		return services.ErrWrongStep
	}
	if !t.Valid() {
		return &services.ValidationError{Field: "delivery_type", Message: "Please choose delivery or pickup"}
	}
	if err := flow.UpdateDetails(func(d *services.Details) {
		d.DeliveryType = t
		if d.Name == "" {
			d.Name = s.displayName()
		}
	}); err != nil {
		return err
	}
	b.ask(s, inputName, flow.Details())
	return nil
}

// ask prompts for the given form field, showing the current value if any.
func (b *Bot) ask(s *session, step inputStep, d services.Details) {
	s.setInput(step)
	switch step {
	case inputName:
		text := "👤 Your name?"
		if d.Name != "" {
			text = fmt.Sprintf("👤 Your name? Send it, or tap Skip to use %q.", d.Name)
			b.sendWithInline(s.chatID, text, skipKeyboard())
			return
		}
		b.send(s.chatID, text)
	case inputPhone, inputContactPhone:
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact("📱 Share phone number")),
		)
		kb.OneTimeKeyboard = true
		kb.ResizeKeyboard = true
		b.sendWithMarkup(s.chatID, "📞 Your phone number? Type it or share it with the button.", kb)
	case inputEmail:
		b.sendWithInline(s.chatID, "✉️ Email for the receipt? Optional.", skipKeyboard())
	case inputAddress:
		b.send(s.chatID, "🚚 Delivery address?")
	}
}

func skipKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Skip", "skip"),
	))
}

// handleInput feeds a text answer to the pending question. It reports false
// when nothing was waiting for one.
func (b *Bot) handleInput(ctx context.Context, s *session, text string) bool {
	step := s.pendingInput()
	if step == inputNone {
		return false
	}
	if step == inputContactPhone {
		b.finishContact(ctx, s, text)
		return true
	}
	flow, _ := s.checkout()
	if flow == nil {
		s.setInput(inputNone)
		return false
	}
	err := flow.UpdateDetails(func(d *services.Details) {
		switch step {
		case inputName:
			d.Name = text
		case inputPhone:
			d.Phone = text
		case inputEmail:
			d.Email = text
		case inputAddress:
			d.Address = text
		}
	})
	if err != nil {
		s.setInput(inputNone)
		return true
	}
	if step == inputPhone {
		b.sendWithMarkup(s.chatID, "✅ Got it.", tgbotapi.NewRemoveKeyboard(true))
	}
	b.nextField(s, flow, step)
	return true
}

// nextField moves the form on from step, submitting it after the last field.
func (b *Bot) nextField(s *session, flow *services.Flow, step inputStep) {
	d := flow.Details()
	switch step {
	case inputName:
		b.ask(s, inputPhone, d)
		return
	case inputPhone:
		b.ask(s, inputEmail, d)
		return
	case inputEmail:
		if d.DeliveryType == models.DeliveryTypeDelivery {
			b.ask(s, inputAddress, d)
			return
		}
	}
	b.submitDetails(s, flow)
}

func (b *Bot) submitDetails(s *session, flow *services.Flow) {
	err := flow.SubmitDetails(flow.Details())
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		b.send(s.chatID, "⚠️ "+ve.Message)
		b.ask(s, fieldStep(ve.Field), flow.Details())
		return
	}
	if err != nil {
		s.setInput(inputNone)
		return
	}
	s.setInput(inputNone)
	st := flow.State()
	msgID := b.sendWithInline(s.chatID, checkoutSummary(st), paymentKeyboard(st.PaymentMethod))
	s.mu.Lock()
	if s.flow == flow {
		s.checkoutMsg = msgID
	}
	s.mu.Unlock()
}

func fieldStep(field string) inputStep {
	switch field {
	case "phone":
		return inputPhone
	case "address":
		return inputAddress
	default:
		return inputName
	}
}

// skipField keeps the current value (name) or leaves the field empty (email).
func (b *Bot) skipField(s *session) {
	step := s.pendingInput()
	flow, _ := s.checkout()
	if flow == nil || (step != inputName && step != inputEmail) {
		return
	}
	if step == inputEmail {
		_ = flow.UpdateDetails(func(d *services.Details) { d.Email = "" })
	}
	b.nextField(s, flow, step)
}

func (b *Bot) selectPayment(s *session, m models.PaymentMethod) error {
	flow, msgID := s.checkout()
	if flow == nil {
		return services.ErrWrongStep
	}
	if err := flow.SelectPayment(m); err != nil {
		return err
	}
	b.renderPayment(s.chatID, msgID, flow.State(), "")
	return nil
}

func (b *Bot) renderPayment(chatID int64, msgID int, st services.FlowState, warning string) {
	text := checkoutSummary(st)
	if warning != "" {
		text += "\n\n⚠️ " + warning
	}
	kb := paymentKeyboard(st.PaymentMethod)
	b.edit(chatID, msgID, text, &kb)
}

func (b *Bot) backToDetails(s *session) error {
	flow, msgID := s.checkout()
	if flow == nil {
		return services.ErrWrongStep
	}
	if err := flow.Back(); err != nil {
		return err
	}
	b.edit(s.chatID, msgID, "✏️ Editing your details...", nil)
	s.mu.Lock()
	s.checkoutMsg = 0
	s.mu.Unlock()
	b.sendWithInline(s.chatID, "How would you like to get your order?", deliveryKeyboard(b.cfg.Checkout.DeliveryCharge))
	return nil
}

// placeOrder submits the checkout. Failures leave the payment step in place
// with the error shown, so the customer can retry.
func (b *Bot) placeOrder(ctx context.Context, s *session) error {
	flow, msgID := s.checkout()
	if flow == nil {
		return services.ErrWrongStep
	}
	if st := flow.State(); st.Step != services.StepPayment {
		return services.ErrWrongStep
	} else if st.Submitting {
		return services.ErrSubmitting
	}
	b.edit(s.chatID, msgID, "⏳ Placing your order...", nil)

	order, err := flow.PlaceOrder(ctx)
	if errors.Is(err, services.ErrSubmitting) || errors.Is(err, services.ErrWrongStep) {
		return err
	}
	if err != nil {
		b.renderPayment(s.chatID, msgID, flow.State(), userMessage(err))
		return err
	}
	b.edit(s.chatID, msgID, confirmationText(order), nil)
	b.notifyAdmin(order)
	return nil
}

func (b *Bot) cancelCheckout(s *session) {
	flow, msgID := s.checkout()
	confirmed := flow != nil && flow.Step() == services.StepConfirmation
	s.resetCheckout()
	b.sendWithMarkup(s.chatID, "Checkout cancelled. Your cart is still here: /cart", tgbotapi.NewRemoveKeyboard(true))
	if msgID != 0 && !confirmed {
		b.edit(s.chatID, msgID, "Checkout cancelled.", nil)
	}
}
