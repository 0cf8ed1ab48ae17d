package api

import "time"

type OrderAnalytics struct {
	Source            string          `json:"source"`
	Date              string          `json:"date"`
	StatusData        []StatusCount   `json:"status_data"`
	DailyData         []DailyPoint    `json:"daily_data"`
	TotalSales        float64         `json:"total_sales"`
	AverageOrderValue float64         `json:"average_order_value"`
	TopCategories     []CategorySales `json:"top_categories"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DailyPoint struct {
	Date   string  `json:"date"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type CategorySales struct {
	Category   string  `json:"category"`
	Sales      float64 `json:"sales"`
	Percentage float64 `json:"percentage"`
}

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type Report struct {
	Title     string         `json:"title"`
	Period    TimePeriod     `json:"period"`
	Orders    int            `json:"orders"`
	Analytics OrderAnalytics `json:"analytics"`
}
