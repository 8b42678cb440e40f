// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "leafline/internal/domain/cart"
	orderdom "leafline/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: orderId (uuid)
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o *orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return orderdom.ErrInvalidOrder
	}

	_, err := r.col().Doc(o.ID).Create(ctx, orderDocFromDomain(o))
	return err
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, orderID string) (*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return nil, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, orderdom.ErrNotFound
		}
		return nil, err
	}

	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	o := doc.toDomain()
	o.ID = oid
	return o, nil
}

func (r *OrderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, orderdom.ErrInvalidOrder
	}

	it := r.col().
		Where("userId", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.collect(it)
}

func (r *OrderRepositoryFS) ListUnnotified(ctx context.Context, limit int) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	it := r.col().
		Where("notified", "==", false).
		Limit(limit).
		Documents(ctx)
	return r.collect(it)
}

func (r *OrderRepositoryFS) MarkNotified(ctx context.Context, orderID string) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return orderdom.ErrInvalidOrder
	}

	_, err := r.col().Doc(oid).Update(ctx, []firestore.Update{
		{Path: "notified", Value: true},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return orderdom.ErrNotFound
	}
	return err
}

func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, orderID string, s orderdom.Status) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return orderdom.ErrInvalidOrder
	}

	_, err := r.col().Doc(oid).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return orderdom.ErrNotFound
	}
	return err
}

func (r *OrderRepositoryFS) collect(it *firestore.DocumentIterator) ([]orderdom.Order, error) {
	defer it.Stop()

	var out []orderdom.Order
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			// Skip malformed docs instead of failing the whole listing.
			continue
		}
		o := doc.toDomain()
		o.ID = snap.Ref.ID
		out = append(out, *o)
	}
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type orderDoc struct {
	UserID   string        `firestore:"userId"`
	DeviceID string        `firestore:"deviceId"`
	Items    []cartItemDoc `firestore:"items"`

	ContactName    string `firestore:"contactName"`
	ContactEmail   string `firestore:"contactEmail"`
	ContactPhone   string `firestore:"contactPhone"`
	ContactAddress string `firestore:"contactAddress"`
	ContactNote    string `firestore:"contactNote"`

	SubtotalCents    int64 `firestore:"subtotalCents"`
	TaxCents         int64 `firestore:"taxCents"`
	DeliveryFeeCents int64 `firestore:"deliveryFeeCents"`
	TotalCents       int64 `firestore:"totalCents"`

	Status   string `firestore:"status"`
	Notified bool   `firestore:"notified"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func orderDocFromDomain(o *orderdom.Order) orderDoc {
	items := make([]cartItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, cartItemDoc{
			ID:          it.ID,
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			Name:        it.Name,
			PriceCents:  it.PriceCents,
			Quantity:    it.Quantity,
			Image:       it.Image,
			VariantName: it.Variant.Name,
			WeightGrams: it.Variant.WeightGrams,
			Category:    it.Category,
		})
	}

	return orderDoc{
		UserID:           o.UserID,
		DeviceID:         o.DeviceID,
		Items:            items,
		ContactName:      o.Contact.Name,
		ContactEmail:     o.Contact.Email,
		ContactPhone:     o.Contact.Phone,
		ContactAddress:   o.Contact.Address,
		ContactNote:      o.Contact.Note,
		SubtotalCents:    o.SubtotalCents,
		TaxCents:         o.TaxCents,
		DeliveryFeeCents: o.DeliveryFeeCents,
		TotalCents:       o.TotalCents,
		Status:           string(o.Status),
		Notified:         o.Notified,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func (d orderDoc) toDomain() *orderdom.Order {
	items := make([]cartdom.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, cartdom.LineItem{
			ID:         it.ID,
			ProductID:  it.ProductID,
			VariantID:  it.VariantID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			Image:      it.Image,
			Category:   it.Category,
			Variant: cartdom.VariantSnapshot{
				Name:        it.VariantName,
				WeightGrams: it.WeightGrams,
			},
		})
	}

	return &orderdom.Order{
		UserID:   d.UserID,
		DeviceID: d.DeviceID,
		Items:    items,
		Contact: orderdom.Contact{
			Name:    d.ContactName,
			Email:   d.ContactEmail,
			Phone:   d.ContactPhone,
			Address: d.ContactAddress,
			Note:    d.ContactNote,
		},
		SubtotalCents:    d.SubtotalCents,
		TaxCents:         d.TaxCents,
		DeliveryFeeCents: d.DeliveryFeeCents,
		TotalCents:       d.TotalCents,
		Status:           orderdom.Status(d.Status),
		Notified:         d.Notified,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
