package adapters

import (
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/models/store"
)

func MapDomainOrderToStore(order domain.Order) store.Order {
	items := make([]store.OrderItem, 0, len(order.Products))
	for i, p := range order.Products {
		var category *string
		if p.Category != "" {
			c := p.Category
			category = &c
		}
		items = append(items, store.OrderItem{
			OrderID:  order.ID,
			Position: i,
			Price:    p.Price,
			Quantity: p.Quantity,
			Category: category,
		})
	}

	return store.Order{
		ID:         order.ID,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		Total:      order.Total,
		PaidAmount: order.PaidAmount,
		Items:      items,
	}
}

func MapStoreOrderToDomain(order store.Order) domain.Order {
	products := make([]domain.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		li := domain.LineItem{
			Price:    item.Price,
			Quantity: item.Quantity,
		}
		if item.Category != nil {
			li.Category = *item.Category
		}
		products = append(products, li)
	}

	return domain.Order{
		ID:         order.ID,
		Status:     domain.OrderStatus(order.Status),
		CreatedAt:  order.CreatedAt,
		Total:      order.Total,
		PaidAmount: order.PaidAmount,
		Products:   products,
	}
}

func MapDomainOrdersToStore(orders []domain.Order) []store.Order {
	res := make([]store.Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, MapDomainOrderToStore(o))
	}
	return res
}

func MapStoreOrdersToDomain(orders []store.Order) []domain.Order {
	res := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, MapStoreOrderToDomain(o))
	}
	return res
}
