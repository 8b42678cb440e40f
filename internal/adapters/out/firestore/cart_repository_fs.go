// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "leafline/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: deviceId (docId is the source of truth)
// - fields: items(array), createdAt, updatedAt
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetByDeviceID returns (nil, nil) if not found (nil policy).
// A doc that cannot be parsed into the current shape also returns (nil, nil):
// corrupt storage must degrade to an empty cart, never crash the storefront.
func (r *CartRepositoryFS) GetByDeviceID(ctx context.Context, deviceID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	did := strings.TrimSpace(deviceID)
	if did == "" {
		return nil, errors.New("cart_repository_fs: deviceID is empty")
	}

	snap, err := r.col().Doc(did).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	doc, ok := cartDocFromSnapshot(snap)
	if !ok {
		return nil, nil
	}

	c := doc.toDomain()
	// docId is source of truth even if the stored doc carries no id field.
	c.ID = did
	return c, nil
}

// Upsert saves cart by docId=cart.ID (= deviceId). Full-doc overwrite,
// last-writer-wins (cross-tab races are accepted, not coordinated).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	did := strings.TrimSpace(c.ID)
	if did == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= deviceId) as docId")
	}

	_, err := r.col().Doc(did).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteByDeviceID(ctx context.Context, deviceID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	did := strings.TrimSpace(deviceID)
	if did == "" {
		return errors.New("cart_repository_fs: deviceID is empty")
	}

	_, err := r.col().Doc(did).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

// cartDoc keeps the persistence shape separate from the domain struct so a
// schema change never turns into a 500 on read.
type cartDoc struct {
	Items     []cartItemDoc `firestore:"items"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
}

type cartItemDoc struct {
	ID          string `firestore:"id"`
	ProductID   string `firestore:"productId"`
	VariantID   string `firestore:"variantId"`
	Name        string `firestore:"name"`
	PriceCents  int64  `firestore:"priceCents"`
	Quantity    int    `firestore:"quantity"`
	Image       string `firestore:"image"`
	VariantName string `firestore:"variantName"`
	WeightGrams int    `firestore:"variantWeightGrams"`
	Category    string `firestore:"category"`
}

// cartDocFromSnapshot parses the stored doc; ok=false means the doc is
// malformed and the caller should treat the cart as empty.
func cartDocFromSnapshot(snap *firestore.DocumentSnapshot) (cartDoc, bool) {
	if snap == nil || !snap.Exists() {
		return cartDoc{}, false
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		return cartDoc{}, false
	}
	return doc, true
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 {
			continue
		}
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

	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d cartDoc) toDomain() *cartdom.Cart {
	items := make([]cartdom.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		// Rows that lost required fields are skipped, not fatal.
		if strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 {
			continue
		}
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

	return &cartdom.Cart{
		// ID is always filled by the caller (docId).
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
