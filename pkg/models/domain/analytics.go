package domain

import "time"

// OrderAnalytics bundles the dashboard views derived from a list of orders.
type OrderAnalytics struct {
	StatusData        []StatusCount
	DailyData         []DailyPoint
	TotalSales        float64
	AverageOrderValue float64
	TopCategories     []CategorySales
}

type StatusCount struct {
	Status OrderStatus
	Count  int
}

type DailyPoint struct {
	Date   time.Time // midnight of the calendar day
	Count  int
	Amount float64
}

type CategorySales struct {
	Category   string
	Sales      float64
	Percentage float64
}
