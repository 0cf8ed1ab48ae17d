package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusApproved   OrderStatus = "approved"
	OrderStatusRejected   OrderStatus = "rejected"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// DefaultCategory is used for line items that carry no category label.
const DefaultCategory = "other"

type Order struct {
	ID         string
	Status     OrderStatus
	CreatedAt  time.Time
	Total      float64 // billed amount
	PaidAmount float64 // collected toward Total
	Products   []LineItem
}

type LineItem struct {
	Price    float64 // unit price
	Quantity int
	Category string // optional
}

// CategoryOrDefault returns the item's category, or DefaultCategory when it has none.
func (li LineItem) CategoryOrDefault() string {
	if li.Category == "" {
		return DefaultCategory
	}
	return li.Category
}
