package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	// WindowDays is the width of the trailing daily series, anchor day included.
	WindowDays = 7
	// TopCategoriesLimit caps the number of categories in the sales breakdown.
	TopCategoriesLimit = 5

	dayKeyLayout = "2006-01-02"
)

// amount sums money in decimal. Once a NaN or infinite value is added it
// falls back to float64 arithmetic, so the anomaly shows in the result.
type amount struct {
	dec     decimal.Decimal
	flt     float64
	inexact bool
}

func (a *amount) add(v float64) {
	a.flt += v
	if math.IsNaN(v) || math.IsInf(v, 0) {
		a.inexact = true
		return
	}
	a.dec = a.dec.Add(decimal.NewFromFloat(v))
}

func (a *amount) addProduct(price float64, quantity int) {
	a.flt += price * float64(quantity)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		a.inexact = true
		return
	}
	a.dec = a.dec.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))))
}

func (a amount) isZero() bool {
	if a.inexact {
		return a.flt == 0
	}
	return a.dec.IsZero()
}

func (a amount) greaterThan(b amount) bool {
	if a.inexact || b.inexact {
		return a.flt > b.flt
	}
	return a.dec.GreaterThan(b.dec)
}

// div returns a / b * scale.
func (a amount) div(b amount, scale int64) float64 {
	if a.inexact || b.inexact {
		return a.flt / b.flt * float64(scale)
	}
	return a.dec.Div(b.dec).Mul(decimal.NewFromInt(scale)).InexactFloat64()
}

func (a amount) Float64() float64 {
	if a.inexact {
		return a.flt
	}
	return a.dec.InexactFloat64()
}

// Aggregate derives the dashboard views from orders. now anchors the daily
// series; calendar days are taken in now's location. It never fails: values
// are summed as given, without validation.
func Aggregate(orders []domain.Order, now time.Time) domain.OrderAnalytics {
	totalSales := totalPaid(orders)

	avg := 0.0
	if len(orders) > 0 {
		count := amount{}
		count.add(float64(len(orders)))
		avg = totalSales.div(count, 1)
	}

	return domain.OrderAnalytics{
		StatusData:        statusHistogram(orders),
		DailyData:         dailySeries(orders, now),
		TotalSales:        totalSales.Float64(),
		AverageOrderValue: avg,
		TopCategories:     topCategories(orders, TopCategoriesLimit),
	}
}

func statusHistogram(orders []domain.Order) []domain.StatusCount {
	res := make([]domain.StatusCount, 0)
	index := make(map[domain.OrderStatus]int)

	for _, o := range orders {
		i, ok := index[o.Status]
		if !ok {
			i = len(res)
			index[o.Status] = i
			res = append(res, domain.StatusCount{Status: o.Status})
		}
		res[i].Count++
	}

	return res
}

type dayBucket struct {
	date   time.Time
	count  int
	amount amount
}

func dailySeries(orders []domain.Order, now time.Time) []domain.DailyPoint {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	buckets := make([]dayBucket, WindowDays)
	index := make(map[string]int, WindowDays)
	for i := 0; i < WindowDays; i++ {
		day := today.AddDate(0, 0, i-(WindowDays-1))
		buckets[i] = dayBucket{date: day}
		index[day.Format(dayKeyLayout)] = i
	}

	for _, o := range orders {
		i, ok := index[o.CreatedAt.In(loc).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		buckets[i].count++
		buckets[i].amount.add(o.Total)
	}

	res := make([]domain.DailyPoint, 0, WindowDays)
	for _, b := range buckets {
		res = append(res, domain.DailyPoint{
			Date:   b.date,
			Count:  b.count,
			Amount: b.amount.Float64(),
		})
	}
	return res
}

func totalPaid(orders []domain.Order) amount {
	var total amount
	for _, o := range orders {
		total.add(o.PaidAmount)
	}
	return total
}

type categoryBucket struct {
	name  string
	sales amount
}

func topCategories(orders []domain.Order, limit int) []domain.CategorySales {
	buckets := make([]categoryBucket, 0)
	index := make(map[string]int)
	var grandTotal amount

	for _, o := range orders {
		for _, item := range o.Products {
			name := item.CategoryOrDefault()
			i, ok := index[name]
			if !ok {
				i = len(buckets)
				index[name] = i
				buckets = append(buckets, categoryBucket{name: name})
			}

			buckets[i].sales.addProduct(item.Price, item.Quantity)
			grandTotal.addProduct(item.Price, item.Quantity)
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].sales.greaterThan(buckets[j].sales)
	})
	if len(buckets) > limit {
		buckets = buckets[:limit]
	}

	res := make([]domain.CategorySales, 0, len(buckets))
	for _, b := range buckets {
		pct := 0.0
		if !grandTotal.isZero() {
			pct = b.sales.div(grandTotal, 100)
		}
		res = append(res, domain.CategorySales{
			Category:   b.name,
			Sales:      b.sales.Float64(),
			Percentage: pct,
		})
	}
	return res
}
