// internal/application/query/storefront/dto/cart_dto.go
package dto

import "fmt"

// CartDTO is the response shape for the storefront cart screen: the line-item
// list plus every derived aggregate, recomputed server-side on each read.
// Money is carried both in cents (for arithmetic on the client) and formatted
// (for display).
type CartDTO struct {
	DeviceID string        `json:"deviceId"`
	Items    []CartItemDTO `json:"items"`

	TotalItems       int    `json:"totalItems"`
	SubtotalCents    int64  `json:"subtotalCents"`
	TaxCents         int64  `json:"taxCents"`
	DeliveryFeeCents int64  `json:"deliveryFeeCents"`
	TotalCents       int64  `json:"totalCents"`
	Subtotal         string `json:"subtotal"`
	TaxAmount        string `json:"taxAmount"`
	DeliveryFee      string `json:"deliveryFee"`
	TotalPrice       string `json:"totalPrice"`

	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type CartItemDTO struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`

	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image"`
	Category   string `json:"category,omitempty"`

	VariantName        string `json:"variantName,omitempty"`
	VariantWeightGrams int    `json:"variantWeightGrams,omitempty"`

	LineTotalCents int64  `json:"lineTotalCents"`
	LineTotal      string `json:"lineTotal"`
}

// Dollars formats integer cents as a display amount ("30.75").
func Dollars(cents int64) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", neg, cents/100, cents%100)
}
