// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("catalog: not found")
	ErrVariantNotFound = errors.New("catalog: variant not found")
)

// Variant is a purchasable option of a product (a specific weight/size), each
// with its own price and identifier. PriceCents is the canonical integer
// minor-unit price; nothing downstream divides or multiplies by 100.
type Variant struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	PriceCents  int64  `json:"priceCents" firestore:"priceCents"`
	WeightGrams int    `json:"weightGrams" firestore:"weightGrams"`
}

// Product is one catalog entry with its purchasable variants.
type Product struct {
	ID          string    `json:"id" firestore:"id"`
	Slug        string    `json:"slug" firestore:"slug"`
	Name        string    `json:"name" firestore:"name"`
	Category    string    `json:"category" firestore:"category"`
	Description string    `json:"description" firestore:"description"`
	ImageURL    string    `json:"imageUrl" firestore:"imageUrl"`
	THCPercent  float64   `json:"thcPercent" firestore:"thcPercent"`
	Active      bool      `json:"active" firestore:"active"`
	Variants    []Variant `json:"variants" firestore:"variants"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Variant returns the variant with the given id.
func (p *Product) Variant(variantID string) (Variant, error) {
	if p == nil {
		return Variant{}, ErrVariantNotFound
	}
	vid := strings.TrimSpace(variantID)
	for _, v := range p.Variants {
		if v.ID == vid {
			return v, nil
		}
	}
	return Variant{}, ErrVariantNotFound
}
