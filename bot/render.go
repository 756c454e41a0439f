package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momo-store/models"
	"momo-store/services"
)

const (
	textMenuLoading    = "⏳ Loading menu..."
	textReviewsLoading = "⏳ Loading reviews..."
	textNoMenu         = "No menu items available right now."
	textNoReviews      = "No reviews yet."
	textCartEmpty      = "🛒 Your cart is empty.\n\nOpen /menu to add some momos."
	textCartClosed     = "Cart closed. Thank you for ordering with us!"
)

func cartButtonLabel(count int) string {
	if count == 0 {
		return "🛒 Cart"
	}
	return fmt.Sprintf("🛒 Cart (%d)", count)
}

func vegMark(veg bool) string {
	if veg {
		return "🟢"
	}
	return "🔴"
}

func menuText(st services.MenuState, cart services.Cart) string {
	switch {
	case st.Status == services.FeedLoading:
		return textMenuLoading
	case st.Status == services.FeedError:
		return "⚠️ " + st.Err
	case st.Empty():
		return textNoMenu
	}
	var b strings.Builder
	b.WriteString("📋 Menu\n")
	for _, c := range st.Categories {
		if c.ID != st.Active {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, "%s\n", c.Description)
		}
		for _, it := range c.Items {
			fmt.Fprintf(&b, "\n%s %s - ₹%d\n", vegMark(it.IsVeg), it.Name, it.Price)
			if it.Description != "" {
				fmt.Fprintf(&b, "   %s\n", it.Description)
			}
		}
	}
	if !cart.Empty() {
		fmt.Fprintf(&b, "\n🛒 %d in cart, ₹%d", cart.Count(), cart.Total())
	}
	return b.String()
}

func menuKeyboard(st services.MenuState, cart services.Cart) tgbotapi.InlineKeyboardMarkup {
	if st.Status == services.FeedError {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 Retry", "menu:retry")),
		)
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	var catRow []tgbotapi.InlineKeyboardButton
	for _, c := range st.Categories {
		label := c.Name
		if c.ID == st.Active {
			label = "• " + label
		}
		catRow = append(catRow, tgbotapi.NewInlineKeyboardButtonData(label, "cat:"+strconv.FormatInt(c.ID, 10)))
		if len(catRow) == 2 {
			rows = append(rows, catRow)
			catRow = nil
		}
	}
	if len(catRow) > 0 {
		rows = append(rows, catRow)
	}
	for _, c := range st.Categories {
		if c.ID != st.Active {
			continue
		}
		for _, it := range c.Items {
			label := fmt.Sprintf("➕ %s - ₹%d", it.Name, it.Price)
			if q := quantityOf(cart, it.ID); q > 0 {
				label += fmt.Sprintf(" (%d)", q)
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, "add:"+strconv.FormatInt(it.ID, 10)),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(cartButtonLabel(cart.Count()), "cart"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func quantityOf(cart services.Cart, itemID int64) int {
	for _, l := range cart.Lines {
		if l.ID == itemID {
			return l.Quantity
		}
	}
	return 0
}

func cartText(cart services.Cart) string {
	if cart.Empty() {
		return textCartEmpty
	}
	var b strings.Builder
	b.WriteString("🛒 Your cart\n\n")
	for _, l := range cart.Lines {
		fmt.Fprintf(&b, "%s %s\n   ₹%d x %d = ₹%d\n", vegMark(l.IsVeg), l.Name, l.Price, l.Quantity, l.Subtotal())
	}
	fmt.Fprintf(&b, "\nTotal: ₹%d", cart.Total())
	return b.String()
}

// cartKeyboard has -/+/remove per line. whatsappURL may be empty.
func cartKeyboard(cart services.Cart, whatsappURL string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range cart.Lines {
		id := strconv.FormatInt(l.ID, 10)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", "dec:"+id),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s x%d", l.Name, l.Quantity), "noop"),
			tgbotapi.NewInlineKeyboardButtonData("➕", "inc:"+id),
			tgbotapi.NewInlineKeyboardButtonData("🗑", "rm:"+id),
		))
	}
	if !cart.Empty() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Checkout", "checkout"),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear", "clear"),
		))
		if whatsappURL != "" {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("💬 Order on WhatsApp", whatsappURL),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📋 Menu", "menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deliveryKeyboard(charge int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🚚 Delivery (+₹%d)", charge), "dt:"+string(models.DeliveryTypeDelivery)),
			tgbotapi.NewInlineKeyboardButtonData("🏪 Pickup", "dt:"+string(models.DeliveryTypePickup)),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", "cancel")),
	)
}

// checkoutSummary is the payment step text: details plus live totals.
func checkoutSummary(st services.FlowState) string {
	var b strings.Builder
	b.WriteString("💳 Payment\n\n")
	d := st.Details
	fmt.Fprintf(&b, "👤 %s\n📞 %s\n", d.Name, d.Phone)
	if d.Email != "" {
		fmt.Fprintf(&b, "✉️ %s\n", d.Email)
	}
	if d.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "🚚 %s\n", d.Address)
	} else {
		b.WriteString("🏪 Pickup\n")
	}
	fmt.Fprintf(&b, "\nSubtotal: ₹%d\n", st.Subtotal)
	if d.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "Delivery: ₹%d\n", st.DeliveryCharge)
	}
	fmt.Fprintf(&b, "Total: ₹%d\n", st.Total)
	if st.PaymentMethod != "" {
		fmt.Fprintf(&b, "\nPaying with %s", services.PaymentLabel(st.PaymentMethod))
	} else {
		b.WriteString("\nChoose a payment method:")
	}
	return b.String()
}

func paymentKeyboard(selected models.PaymentMethod) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range models.PaymentMethods {
		label := services.PaymentLabel(m)
		if m == selected {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "pay:"+string(m)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "back"),
		tgbotapi.NewInlineKeyboardButtonData("🛍 Place order", "place"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmationText(o *models.Order) string {
	return fmt.Sprintf("🎉 Order placed!\n\nOrder ID: %s\nTotal: ₹%d\n\nWe will call you shortly to confirm.", o.OrderID, o.Total)
}

func stars(rating int) string {
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}

func reviewsText(st services.ReviewsState) string {
	switch {
	case st.Status == services.FeedLoading:
		return textReviewsLoading
	case st.Status == services.FeedError:
		return "⚠️ " + st.Err
	case st.Empty():
		return textNoReviews
	}
	var b strings.Builder
	b.WriteString("💬 What our customers say\n")
	for _, r := range st.Reviews {
		fmt.Fprintf(&b, "\n%s %s (%s)", stars(r.Rating), r.Name, r.Avatar)
		if r.Date != "" {
			fmt.Fprintf(&b, " · %s", r.Date)
		}
		fmt.Fprintf(&b, "\n%s\n", r.Review)
	}
	return b.String()
}

func reviewsKeyboard(st services.ReviewsState) *tgbotapi.InlineKeyboardMarkup {
	if st.Status != services.FeedError {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 Retry", "reviews:retry")),
	)
	return &kb
}

func infoText(info *models.RestaurantInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", info.EnglishName, info.Name)
	if info.Tagline != "" {
		fmt.Fprintf(&b, "%s\n", info.Tagline)
	}
	fmt.Fprintf(&b, "\n⭐ %.1f (%d reviews)\n", info.Rating, info.TotalReviews)
	if info.PriceRange != "" {
		fmt.Fprintf(&b, "💰 %s\n", info.PriceRange)
	}
	fmt.Fprintf(&b, "📍 %s\n", info.Address)
	if info.Timings != "" {
		fmt.Fprintf(&b, "🕙 %s\n", info.Timings)
	}
	fmt.Fprintf(&b, "📞 %s\n", info.Phone)
	if len(info.Services) > 0 {
		fmt.Fprintf(&b, "\n%s", strings.Join(info.Services, " · "))
	}
	return b.String()
}

// cardMarkup converts OrderCardContent.Buttons to an inline keyboard (URL vs callback).
func cardMarkup(c services.OrderCardContent) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			if btn.URL != "" {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			} else {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
			}
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
