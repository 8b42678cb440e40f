// internal/application/query/storefront/catalog_query.go
package storefront

import (
	"context"
	"errors"
	"strings"

	"leafline/internal/application/query/storefront/dto"
	catalogdom "leafline/internal/domain/catalog"
)

var ErrNotFound = errors.New("storefront_query: not found")

// CatalogQuery is the buyer-facing catalog read model.
type CatalogQuery struct {
	Repo catalogdom.Repository
}

func NewCatalogQuery(repo catalogdom.Repository) *CatalogQuery {
	return &CatalogQuery{Repo: repo}
}

// ListActive returns the product grid (active products only).
func (q *CatalogQuery) ListActive(ctx context.Context) ([]dto.ProductDTO, error) {
	if q == nil || q.Repo == nil {
		return nil, errors.New("storefront_query: catalog repo is nil")
	}

	products, err := q.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, toProductDTO(&products[i]))
	}
	return out, nil
}

// GetBySlugOrID serves /storefront/catalog/{slug-or-id}: a direct id hit wins,
// otherwise the active list is scanned for a slug match.
func (q *CatalogQuery) GetBySlugOrID(ctx context.Context, key string) (dto.ProductDTO, error) {
	if q == nil || q.Repo == nil {
		return dto.ProductDTO{}, errors.New("storefront_query: catalog repo is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return dto.ProductDTO{}, ErrNotFound
	}

	if p, err := q.Repo.GetByID(ctx, key); err == nil && p != nil && p.Active {
		return toProductDTO(p), nil
	} else if err != nil && !errors.Is(err, catalogdom.ErrNotFound) {
		return dto.ProductDTO{}, err
	}

	products, err := q.Repo.ListActive(ctx)
	if err != nil {
		return dto.ProductDTO{}, err
	}
	for i := range products {
		if products[i].Slug == key {
			return toProductDTO(&products[i]), nil
		}
	}
	return dto.ProductDTO{}, ErrNotFound
}

func toProductDTO(p *catalogdom.Product) dto.ProductDTO {
	out := dto.ProductDTO{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		THCPercent:  p.THCPercent,
		Variants:    make([]dto.VariantDTO, 0, len(p.Variants)),
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, dto.VariantDTO{
			ID:          v.ID,
			Name:        v.Name,
			PriceCents:  v.PriceCents,
			Price:       dto.Dollars(v.PriceCents),
			WeightGrams: v.WeightGrams,
		})
	}
	return out
}
