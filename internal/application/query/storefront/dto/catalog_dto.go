// internal/application/query/storefront/dto/catalog_dto.go
package dto

// ProductDTO is the storefront grid / detail shape.
type ProductDTO struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"imageUrl"`
	THCPercent  float64      `json:"thcPercent,omitempty"`
	Variants    []VariantDTO `json:"variants"`
}

type VariantDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	Price       string `json:"price"`
	WeightGrams int    `json:"weightGrams"`
}
