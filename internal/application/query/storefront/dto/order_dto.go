// internal/application/query/storefront/dto/order_dto.go
package dto

// OrderDTO is the order-tracking response shape.
type OrderDTO struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	DeviceID string `json:"deviceId,omitempty"`

	Items []CartItemDTO `json:"items"`

	SubtotalCents    int64  `json:"subtotalCents"`
	TaxCents         int64  `json:"taxCents"`
	DeliveryFeeCents int64  `json:"deliveryFeeCents"`
	TotalCents       int64  `json:"totalCents"`
	TotalPrice       string `json:"totalPrice"`

	ContactName     string `json:"contactName,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
