package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"momo-store/models"
)

// DefaultDeliveryCharge is the flat surcharge for home delivery.
const DefaultDeliveryCharge int64 = 30

// MaxItemQuantity caps the quantity of one order line.
const MaxItemQuantity = 1000

// CalcDeliveryCharge returns the surcharge for deliveryType: charge for
// delivery, 0 for pickup.
func CalcDeliveryCharge(deliveryType models.DeliveryType, charge int64) int64 {
	if deliveryType == models.DeliveryTypeDelivery {
		return charge
	}
	return 0
}

// CalcSubtotal sums price x quantity over the order items.
func CalcSubtotal(items []models.OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// ValidationError is a locally detected input problem. No request is made
// when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	ErrNoPaymentMethod = &ValidationError{Field: "payment_method", Message: "Please select a payment method"}
	ErrEmptyCart       = &ValidationError{Field: "items", Message: "Your cart is empty"}
	ErrTotalTooLarge   = &ValidationError{Field: "items", Message: "Order total is too large"}
)

// Details is the customer form of the first checkout step.
type Details struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	DeliveryType models.DeliveryType
}

// Validate checks required fields: name and phone always, address only for
// delivery.
func (d Details) Validate() error {
	if !d.DeliveryType.Valid() {
		return &ValidationError{Field: "delivery_type", Message: "Please choose delivery or pickup"}
	}
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if strings.TrimSpace(d.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "Phone is required"}
	}
	if d.DeliveryType == models.DeliveryTypeDelivery && strings.TrimSpace(d.Address) == "" {
		return &ValidationError{Field: "address", Message: "Delivery address is required"}
	}
	return nil
}

// BuildOrderInput assembles the order draft from the form and a cart snapshot.
func BuildOrderInput(d Details, cart Cart, method models.PaymentMethod) (models.CreateOrderInput, error) {
	if err := d.Validate(); err != nil {
		return models.CreateOrderInput{}, err
	}
	if !method.Valid() {
		return models.CreateOrderInput{}, ErrNoPaymentMethod
	}
	if cart.Empty() {
		return models.CreateOrderInput{}, ErrEmptyCart
	}
	in := models.CreateOrderInput{
		CustomerName:  strings.TrimSpace(d.Name),
		CustomerPhone: strings.TrimSpace(d.Phone),
		DeliveryType:  d.DeliveryType,
		Items:         cart.OrderItems(),
		PaymentMethod: method,
	}
	if email := strings.TrimSpace(d.Email); email != "" {
		in.CustomerEmail = &email
	}
	if d.DeliveryType == models.DeliveryTypeDelivery {
		addr := strings.TrimSpace(d.Address)
		in.DeliveryAddress = &addr
	}
	return in, nil
}

// ValidateOrderInput is the server-side check of an incoming order draft.
func ValidateOrderInput(in models.CreateOrderInput) error {
	d := Details{Name: in.CustomerName, Phone: in.CustomerPhone, DeliveryType: in.DeliveryType}
	if in.DeliveryAddress != nil {
		d.Address = *in.DeliveryAddress
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if !in.PaymentMethod.Valid() {
		return &ValidationError{Field: "payment_method", Message: fmt.Sprintf("Invalid payment method %q", in.PaymentMethod)}
	}
	if len(in.Items) == 0 {
		return ErrEmptyCart
	}
	var subtotal int64
	for _, it := range in.Items {
		if it.Quantity < 1 || it.Quantity > MaxItemQuantity {
			return &ValidationError{Field: "items", Message: fmt.Sprintf("Invalid quantity for item %d", it.ItemID)}
		}
		if it.Price < 0 {
			return &ValidationError{Field: "items", Message: fmt.Sprintf("Invalid price for item %d", it.ItemID)}
		}
		qty := int64(it.Quantity)
		if it.Price > (math.MaxInt64-subtotal)/qty {
			return ErrTotalTooLarge
		}
		subtotal += it.Price * qty
	}
	return nil
}

// NewOrderID returns "ORD" followed by eight upper-case hex digits.
func NewOrderID() string {
	return "ORD" + strings.ToUpper(uuid.NewString()[:8])
}

// NewOrder prices a validated draft and stamps it as a pending order.
func NewOrder(in models.CreateOrderInput, charge int64, now time.Time) (*models.Order, error) {
	if err := ValidateOrderInput(in); err != nil {
		return nil, err
	}
	subtotal := CalcSubtotal(in.Items)
	delivery := CalcDeliveryCharge(in.DeliveryType, charge)
	if delivery > math.MaxInt64-subtotal {
		return nil, ErrTotalTooLarge
	}
	o := &models.Order{
		OrderID:        NewOrderID(),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:  in.CustomerEmail,
		DeliveryType:   in.DeliveryType,
		Items:          in.Items,
		Subtotal:       subtotal,
		DeliveryCharge: delivery,
		Total:          subtotal + delivery,
		PaymentMethod:  in.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		OrderStatus:    models.OrderStatusPending,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	if in.DeliveryType == models.DeliveryTypeDelivery {
		o.DeliveryAddress = in.DeliveryAddress
	}
	return o, nil
}
