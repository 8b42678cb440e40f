// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	cartdom "leafline/internal/domain/cart"
	notifdom "leafline/internal/domain/notification"
	orderdom "leafline/internal/domain/order"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
)

// OrderUsecase places orders from cart snapshots and serves the signed-in
// order-tracking surface.
type OrderUsecase struct {
	orders   orderdom.Repository
	carts    cartdom.Repository
	notifier notifdom.Notifier
	clock    Clock
	newID    func() string

	// archiver is optional (reporting sink); nil disables archiving.
	archiver orderdom.Archiver
}

func NewOrderUsecase(orders orderdom.Repository, carts cartdom.Repository, notifier notifdom.Notifier) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		carts:    carts,
		notifier: notifier,
		clock:    systemClock{},
		newID:    uuid.NewString,
	}
}

// WithArchiver attaches the optional Postgres reporting sink.
func (uc *OrderUsecase) WithArchiver(a orderdom.Archiver) *OrderUsecase {
	uc.archiver = a
	return uc
}

// WithClock is useful for tests.
func (uc *OrderUsecase) WithClock(clock Clock) *OrderUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// PlaceOrder snapshots the device's cart into a pending order, persists it,
// clears the cart, and notifies the device. The confirmation email itself is
// sent out-of-band by the ordermailer (the order starts with Notified=false).
func (uc *OrderUsecase) PlaceOrder(ctx context.Context, deviceID, userID string, contact orderdom.Contact) (*orderdom.Order, error) {
	did := strings.TrimSpace(deviceID)
	if did == "" {
		return nil, ErrOrderInvalidArgument
	}
	if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Address) == "" {
		return nil, ErrOrderInvalidArgument
	}

	c, err := uc.carts.GetByDeviceID(ctx, did)
	if err != nil {
		return nil, fmt.Errorf("order_usecase: load cart: %w", err)
	}
	if c == nil || len(c.Items) == 0 {
		return nil, orderdom.ErrEmptyCart
	}

	now := uc.clock.Now()
	o, err := orderdom.FromCart(uc.newID(), c, userID, contact, now)
	if err != nil {
		return nil, err
	}

	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("order_usecase: create order: %w", err)
	}

	// Consume the cart. A failure here leaves a stale cart behind, which the
	// shopper can clear; the order itself is already safe.
	if err := uc.carts.DeleteByDeviceID(ctx, did); err != nil {
		log.Printf("[order_usecase] cart delete after checkout failed deviceId=%q orderId=%q err=%v", did, o.ID, err)
	}

	if uc.archiver != nil {
		if err := uc.archiver.Archive(ctx, o); err != nil {
			log.Printf("[order_usecase] archive failed (best-effort) orderId=%q err=%v", o.ID, err)
		}
	}

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, did, notifdom.Notification{
			Title:       "Order placed",
			Description: fmt.Sprintf("Order %s is pending confirmation", shortID(o.ID)),
		})
	}

	return o, nil
}

// Track returns the order if it belongs to the user.
func (uc *OrderUsecase) Track(ctx context.Context, userID, orderID string) (*orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(orderID)
	if uid == "" || oid == "" {
		return nil, ErrOrderInvalidArgument
	}

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o.UserID != uid {
		// Do not leak other users' orders; indistinguishable from missing.
		return nil, orderdom.ErrNotFound
	}
	return o, nil
}

// List returns the user's orders, newest first.
func (uc *OrderUsecase) List(ctx context.Context, userID string) ([]orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.orders.ListByUser(ctx, uid)
}

// UpdateStatus applies a lifecycle transition and persists it.
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, status orderdom.Status) (*orderdom.Order, error) {
	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return nil, ErrOrderInvalidArgument
	}

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := o.Transition(status, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.orders.UpdateStatus(ctx, oid, status); err != nil {
		return nil, err
	}
	return o, nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
