package models

import "time"

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

func (t DeliveryType) Valid() bool {
	return t == DeliveryTypeDelivery || t == DeliveryTypePickup
}

// PaymentMethod values are presentational; every method results in a stored order.
type PaymentMethod string

const (
	PaymentRazorpay PaymentMethod = "razorpay"
	PaymentPhonePe  PaymentMethod = "phonepe"
	PaymentCOD      PaymentMethod = "cod"
)

var PaymentMethods = []PaymentMethod{PaymentRazorpay, PaymentPhonePe, PaymentCOD}

func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateOrderInput is the order draft sent once to POST /api/orders.
type CreateOrderInput struct {
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerEmail   *string       `json:"customer_email"`
	DeliveryAddress *string       `json:"delivery_address"`
	DeliveryType    DeliveryType  `json:"delivery_type"`
	Items           []OrderItem   `json:"items"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
}

type Order struct {
	OrderID         string        `json:"order_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerEmail   *string       `json:"customer_email"`
	DeliveryAddress *string       `json:"delivery_address"`
	DeliveryType    DeliveryType  `json:"delivery_type"`
	Items           []OrderItem   `json:"items"`
	Subtotal        int64         `json:"subtotal"`
	DeliveryCharge  int64         `json:"delivery_charge"`
	Total           int64         `json:"total"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentStatus   string        `json:"payment_status"`
	OrderStatus     string        `json:"order_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

const (
	OrderStatusPending   = "pending"
	PaymentStatusPending = "pending"
)
