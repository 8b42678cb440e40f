// internal/application/query/storefront/cart_view.go
package storefront

import (
	"time"

	"leafline/internal/application/query/storefront/dto"
	cartdom "leafline/internal/domain/cart"
)

// ToCartDTO maps a domain cart (plus its freshly recomputed totals) into the
// storefront response shape. Pure function: the handler owns the effects, this
// owns the shape.
func ToCartDTO(c *cartdom.Cart) dto.CartDTO {
	out := dto.CartDTO{
		Items:       []dto.CartItemDTO{},
		Subtotal:    dto.Dollars(0),
		TaxAmount:   dto.Dollars(0),
		DeliveryFee: dto.Dollars(0),
		TotalPrice:  dto.Dollars(0),
	}
	if c == nil {
		return out
	}

	out.DeviceID = c.ID
	for _, it := range c.Items {
		lineTotal := it.PriceCents * int64(it.Quantity)
		out.Items = append(out.Items, dto.CartItemDTO{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			VariantID:          it.VariantID,
			Name:               it.Name,
			PriceCents:         it.PriceCents,
			Price:              dto.Dollars(it.PriceCents),
			Quantity:           it.Quantity,
			Image:              it.Image,
			Category:           it.Category,
			VariantName:        it.Variant.Name,
			VariantWeightGrams: it.Variant.WeightGrams,
			LineTotalCents:     lineTotal,
			LineTotal:          dto.Dollars(lineTotal),
		})
	}

	t := c.Totals()
	out.TotalItems = t.TotalItems
	out.SubtotalCents = t.SubtotalCents
	out.TaxCents = t.TaxCents
	out.DeliveryFeeCents = t.DeliveryFeeCents
	out.TotalCents = t.TotalCents
	out.Subtotal = dto.Dollars(t.SubtotalCents)
	out.TaxAmount = dto.Dollars(t.TaxCents)
	out.DeliveryFee = dto.Dollars(t.DeliveryFeeCents)
	out.TotalPrice = dto.Dollars(t.TotalCents)

	if !c.UpdatedAt.IsZero() {
		s := c.UpdatedAt.UTC().Format(time.RFC3339)
		out.UpdatedAt = &s
	}
	return out
}
