package store

import "time"

type Order struct {
	ID         string
	Status     string
	CreatedAt  time.Time
	Total      float64
	PaidAmount float64
	Items      []OrderItem
}

type OrderItem struct {
	OrderID  string
	Position int
	Price    float64
	Quantity int
	Category *string
}
