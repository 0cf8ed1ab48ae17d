package adapters

import (
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/api"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
)

const dateLayout = "2006-01-02"

func MapAnalyticsDomainToApi(source string, now time.Time, a domain.OrderAnalytics) api.OrderAnalytics {
	res := api.OrderAnalytics{
		Source:            source,
		Date:              now.Format(dateLayout),
		StatusData:        make([]api.StatusCount, 0, len(a.StatusData)),
		DailyData:         make([]api.DailyPoint, 0, len(a.DailyData)),
		TotalSales:        a.TotalSales,
		AverageOrderValue: a.AverageOrderValue,
		TopCategories:     make([]api.CategorySales, 0, len(a.TopCategories)),
	}

	for _, s := range a.StatusData {
		res.StatusData = append(res.StatusData, api.StatusCount{
			Status: string(s.Status),
			Count:  s.Count,
		})
	}
	for _, d := range a.DailyData {
		res.DailyData = append(res.DailyData, api.DailyPoint{
			Date:   d.Date.Format(dateLayout),
			Count:  d.Count,
			Amount: d.Amount,
		})
	}
	for _, c := range a.TopCategories {
		res.TopCategories = append(res.TopCategories, api.CategorySales{
			Category:   c.Category,
			Sales:      c.Sales,
			Percentage: c.Percentage,
		})
	}

	return res
}

func MapReportDomainToApi(r *domain.Report) api.Report {
	return api.Report{
		Title: r.Title,
		Period: api.TimePeriod{
			Start:    r.Period.Start,
			End:      r.Period.End,
			Duration: r.Period.Duration,
		},
		Orders:    r.Orders,
		Analytics: MapAnalyticsDomainToApi(r.Source, r.Period.End, r.Analytics),
	}
}

func MapSourceProfileDomainToApi(p domain.SourceProfile) api.Source {
	return api.Source{
		Name: p.Name,
		Type: string(p.Type),
	}
}
