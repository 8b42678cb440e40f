// internal/application/query/storefront/order_view.go
package storefront

import (
	"time"

	"leafline/internal/application/query/storefront/dto"
	orderdom "leafline/internal/domain/order"
)

// ToOrderDTO maps a domain order to the tracking response shape.
func ToOrderDTO(o *orderdom.Order) dto.OrderDTO {
	out := dto.OrderDTO{
		Items: []dto.CartItemDTO{},
	}
	if o == nil {
		return out
	}

	out.ID = o.ID
	out.Status = string(o.Status)
	out.DeviceID = o.DeviceID
	out.SubtotalCents = o.SubtotalCents
	out.TaxCents = o.TaxCents
	out.DeliveryFeeCents = o.DeliveryFeeCents
	out.TotalCents = o.TotalCents
	out.TotalPrice = dto.Dollars(o.TotalCents)
	out.ContactName = o.Contact.Name
	out.DeliveryAddress = o.Contact.Address
	out.CreatedAt = o.CreatedAt.UTC().Format(time.RFC3339)
	out.UpdatedAt = o.UpdatedAt.UTC().Format(time.RFC3339)

	for _, it := range o.Items {
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
	return out
}
