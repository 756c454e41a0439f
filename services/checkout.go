package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"momo-store/models"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

var (
	ErrWrongStep  = errors.New("checkout: action not allowed in current step")
	ErrSubmitting = errors.New("checkout: order is already being placed")
)

// OrderCreator submits an order draft. client.Client implements it.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in models.CreateOrderInput) (*models.Order, error)
}

// Timer is the handle of a deferred action.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. time.AfterFunc satisfies it through AfterFunc.
type Scheduler func(d time.Duration, f func()) Timer

func AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type FlowOption func(*Flow)

func WithDeliveryCharge(charge int64) FlowOption {
	return func(f *Flow) { f.charge = charge }
}

func WithConfirmDelay(d time.Duration) FlowOption {
	return func(f *Flow) { f.delay = d }
}

func WithScheduler(s Scheduler) FlowOption {
	return func(f *Flow) { f.schedule = s }
}

// WithOnClose registers fn to run once the confirmation delay has elapsed and
// the cart has been cleared.
func WithOnClose(fn func()) FlowOption {
	return func(f *Flow) { f.onClose = fn }
}

// FlowState is a snapshot of the checkout for rendering.
type FlowState struct {
	Step           Step
	Details        Details
	PaymentMethod  models.PaymentMethod
	Submitting     bool
	Order          *models.Order
	Err            error
	Closed         bool
	Subtotal       int64
	DeliveryCharge int64
	Total          int64
}

// Flow is the three step checkout: details, payment, confirmation. It reads
// the cart through the store and clears it only after a confirmed order.
type Flow struct {
	cart   *CartStore
	orders OrderCreator

	charge   int64
	delay    time.Duration
	schedule Scheduler
	onClose  func()

	mu         sync.Mutex
	step       Step
	details    Details
	payment    models.PaymentMethod
	submitting bool
	order      *models.Order
	lastErr    error
	closed     bool
	pending    Timer
}

func NewFlow(cart *CartStore, orders OrderCreator, opts ...FlowOption) *Flow {
	f := &Flow{
		cart:     cart,
		orders:   orders,
		charge:   DefaultDeliveryCharge,
		delay:    3 * time.Second,
		schedule: AfterFunc,
		step:     StepDetails,
		details:  Details{DeliveryType: models.DeliveryTypeDelivery},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Details returns the current form values.
func (f *Flow) Details() Details {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details
}

// UpdateDetails edits the form without validating it. Only allowed on the
// details step.
func (f *Flow) UpdateDetails(fn func(*Details)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDetails {
		return ErrWrongStep
	}
	fn(&f.details)
	return nil
}

// SubmitDetails validates d and moves to the payment step. No request is made.
func (f *Flow) SubmitDetails(d Details) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDetails {
		return ErrWrongStep
	}
	f.details = d
	if err := d.Validate(); err != nil {
		f.lastErr = err
		return err
	}
	f.lastErr = nil
	f.step = StepPayment
	return nil
}

// Back returns from payment to details. Not allowed while an order is being
// placed or after it was confirmed.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if f.submitting {
		return ErrSubmitting
	}
	f.step = StepDetails
	f.lastErr = nil
	return nil
}

func (f *Flow) SelectPayment(m models.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if !m.Valid() {
		return ErrNoPaymentMethod
	}
	f.payment = m
	return nil
}

// DeliveryCharge is derived from the current delivery type.
func (f *Flow) DeliveryCharge() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CalcDeliveryCharge(f.details.DeliveryType, f.charge)
}

// Total is the live cart total plus the delivery charge.
func (f *Flow) Total() int64 {
	return f.cart.Total() + f.DeliveryCharge()
}

// PlaceOrder submits the order. On success the flow moves to confirmation and
// schedules the cart clear and close after the confirm delay. On failure it
// stays on the payment step so the user can retry.
func (f *Flow) PlaceOrder(ctx context.Context) (*models.Order, error) {
	f.mu.Lock()
	if f.step != StepPayment || f.closed {
		f.mu.Unlock()
		return nil, ErrWrongStep
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	if f.payment == "" {
		f.lastErr = ErrNoPaymentMethod
		f.mu.Unlock()
		return nil, ErrNoPaymentMethod
	}
	in, err := BuildOrderInput(f.details, f.cart.Snapshot(), f.payment)
	if err != nil {
		f.lastErr = err
		f.mu.Unlock()
		return nil, err
	}
	f.submitting = true
	f.lastErr = nil
	f.mu.Unlock()

	order, err := f.orders.CreateOrder(ctx, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.lastErr = err
		return nil, err
	}
	f.order = order
	f.step = StepConfirmation
	if !f.closed {
		f.pending = f.schedule(f.delay, f.finish)
	}
	return order, nil
}

// finish runs after the confirm delay.
func (f *Flow) finish() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.pending = nil
	onClose := f.onClose
	f.mu.Unlock()

	f.cart.Clear()
	f.cart.SetOpen(false)
	if onClose != nil {
		onClose()
	}
}

// Close tears the flow down. A pending clear-and-close is cancelled, so a
// confirmed order closed early leaves the cart untouched.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.closed = true
}

func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) Order() *models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

func (f *Flow) State() FlowState {
	cart := f.cart.Snapshot()
	f.mu.Lock()
	defer f.mu.Unlock()
	charge := CalcDeliveryCharge(f.details.DeliveryType, f.charge)
	return FlowState{
		Step:           f.step,
		Details:        f.details,
		PaymentMethod:  f.payment,
		Submitting:     f.submitting,
		Order:          f.order,
		Err:            f.lastErr,
		Closed:         f.closed,
		Subtotal:       cart.Total(),
		DeliveryCharge: charge,
		Total:          cart.Total() + charge,
	}
}
