// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogdom "leafline/internal/domain/catalog"
)

// ProductRepositoryFS implements catalog.Repository using Firestore.
//
// Collection design:
// - collection: products
// - docId: productId
type ProductRepositoryFS struct {
	Client *firestore.Client

	// maxConcurrent caps the fan-out of ExistingActiveIDs doc reads.
	maxConcurrent int
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client, maxConcurrent: 10}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, productID string) (*catalogdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, catalogdom.ErrNotFound
	}

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, catalogdom.ErrNotFound
		}
		return nil, err
	}

	doc, ok := productDocFromSnapshot(snap)
	if !ok {
		return nil, catalogdom.ErrNotFound
	}

	p := doc.toDomain()
	p.ID = pid
	return p, nil
}

func (r *ProductRepositoryFS) ListActive(ctx context.Context) ([]catalogdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	it := r.col().Where("active", "==", true).Documents(ctx)
	defer it.Stop()

	var out []catalogdom.Product
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		doc, ok := productDocFromSnapshot(snap)
		if !ok {
			continue
		}
		p := doc.toDomain()
		p.ID = snap.Ref.ID
		out = append(out, *p)
	}
	return out, nil
}

// ExistingActiveIDs fans out one doc read per id (bounded) and returns the
// subset that exists and is active. Any read error fails the whole call so the
// reconciliation pass keeps the unvalidated cart instead of dropping items on
// a flaky network.
func (r *ProductRepositoryFS) ExistingActiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	limit := r.maxConcurrent
	if limit <= 0 {
		limit = 10
	}

	results := make([]bool, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for idx := range ids {
		idx := idx
		g.Go(func() error {
			pid := strings.TrimSpace(ids[idx])
			if pid == "" {
				return nil
			}

			snap, err := r.col().Doc(pid).Get(ctx)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return nil
				}
				return err
			}

			var probe struct {
				Active bool `firestore:"active"`
			}
			if err := snap.DataTo(&probe); err != nil {
				return nil
			}
			results[idx] = probe.Active
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for idx, ok := range results {
		if ok {
			existing[strings.TrimSpace(ids[idx])] = struct{}{}
		}
	}
	return existing, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type productDoc struct {
	Slug        string          `firestore:"slug"`
	Name        string          `firestore:"name"`
	Category    string          `firestore:"category"`
	Description string          `firestore:"description"`
	ImageURL    string          `firestore:"imageUrl"`
	THCPercent  float64         `firestore:"thcPercent"`
	Active      bool            `firestore:"active"`
	Variants    []productVarDoc `firestore:"variants"`
	CreatedAt   time.Time       `firestore:"createdAt"`
	UpdatedAt   time.Time       `firestore:"updatedAt"`
}

type productVarDoc struct {
	ID          string `firestore:"id"`
	Name        string `firestore:"name"`
	PriceCents  int64  `firestore:"priceCents"`
	WeightGrams int    `firestore:"weightGrams"`
}

func productDocFromSnapshot(snap *firestore.DocumentSnapshot) (productDoc, bool) {
	if snap == nil || !snap.Exists() {
		return productDoc{}, false
	}
	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return productDoc{}, false
	}
	return doc, true
}

func (d productDoc) toDomain() *catalogdom.Product {
	variants := make([]catalogdom.Variant, 0, len(d.Variants))
	for _, v := range d.Variants {
		if strings.TrimSpace(v.ID) == "" {
			continue
		}
		variants = append(variants, catalogdom.Variant{
			ID:          v.ID,
			Name:        v.Name,
			PriceCents:  v.PriceCents,
			WeightGrams: v.WeightGrams,
		})
	}

	return &catalogdom.Product{
		Slug:        d.Slug,
		Name:        d.Name,
		Category:    d.Category,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		THCPercent:  d.THCPercent,
		Active:      d.Active,
		Variants:    variants,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
