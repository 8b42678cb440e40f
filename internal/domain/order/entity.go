// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	cartdom "leafline/internal/domain/cart"
)

var (
	ErrInvalidOrder = errors.New("order: invalid")
	ErrEmptyCart    = errors.New("order: cart is empty")
	ErrNotFound     = errors.New("order: not found")
)

// Status lifecycle: pending -> confirmed -> out_for_delivery -> delivered,
// or cancelled from any non-terminal state.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Contact is the delivery contact captured at checkout.
type Contact struct {
	Name    string `json:"name" firestore:"name"`
	Email   string `json:"email" firestore:"email"`
	Phone   string `json:"phone" firestore:"phone"`
	Address string `json:"address" firestore:"address"`
	Note    string `json:"note" firestore:"note"`
}

// Order is a checkout-time snapshot of a cart: line items and totals are
// copied, not referenced, so later catalog or cart changes never rewrite an
// order.
type Order struct {
	ID       string `json:"id" firestore:"id"`
	UserID   string `json:"userId" firestore:"userId"`
	DeviceID string `json:"deviceId" firestore:"deviceId"`

	Items   []cartdom.LineItem `json:"items" firestore:"items"`
	Contact Contact            `json:"contact" firestore:"contact"`

	SubtotalCents    int64 `json:"subtotalCents" firestore:"subtotalCents"`
	TaxCents         int64 `json:"taxCents" firestore:"taxCents"`
	DeliveryFeeCents int64 `json:"deliveryFeeCents" firestore:"deliveryFeeCents"`
	TotalCents       int64 `json:"totalCents" firestore:"totalCents"`

	Status Status `json:"status" firestore:"status"`

	// Notified marks that the confirmation mail was sent (ordermailer).
	Notified bool `json:"notified" firestore:"notified"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// FromCart builds a pending order from the cart's current items and totals.
func FromCart(id string, c *cartdom.Cart, userID string, contact Contact, now time.Time) (*Order, error) {
	if strings.TrimSpace(id) == "" || c == nil {
		return nil, ErrInvalidOrder
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	t := c.Totals()

	items := make([]cartdom.LineItem, len(c.Items))
	copy(items, c.Items)

	o := &Order{
		ID:               strings.TrimSpace(id),
		UserID:           strings.TrimSpace(userID),
		DeviceID:         c.ID,
		Items:            items,
		Contact:          contact,
		SubtotalCents:    t.SubtotalCents,
		TaxCents:         t.TaxCents,
		DeliveryFeeCents: t.DeliveryFeeCents,
		TotalCents:       t.TotalCents,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Transition moves the order to next if the lifecycle allows it.
func (o *Order) Transition(next Status, now time.Time) error {
	if o == nil {
		return ErrInvalidOrder
	}
	if !o.Status.canTransitionTo(next) {
		return ErrInvalidOrder
	}
	o.Status = next
	o.UpdatedAt = now
	return nil
}

func (s Status) canTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusOutForDelivery || next == StatusCancelled
	case StatusOutForDelivery:
		return next == StatusDelivered || next == StatusCancelled
	default:
		return false
	}
}

func (o *Order) validate() error {
	if o == nil {
		return ErrInvalidOrder
	}
	if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.DeviceID) == "" {
		return ErrInvalidOrder
	}
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	if o.SubtotalCents < 0 || o.TaxCents < 0 || o.DeliveryFeeCents < 0 || o.TotalCents < 0 {
		return ErrInvalidOrder
	}
	return nil
}
