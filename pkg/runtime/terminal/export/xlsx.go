package export

import (
	"fmt"
	"io"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetStatus     = "Status"
	SheetDaily      = "Daily"
	SheetCategories = "Categories"
)

// XLSXReporter writes the report as a workbook with one sheet per view.
type XLSXReporter struct {
	writer io.Writer
}

func NewXLSXReporter(writer io.Writer) *XLSXReporter {
	return &XLSXReporter{writer: writer}
}

func (x *XLSXReporter) Handle(report *domain.Report) error {
	if x.writer == nil {
		return fmt.Errorf("xlsx report needs an output file")
	}

	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Workbook builds the spreadsheet for report.
func Workbook(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// the default sheet becomes the summary
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	summary := [][]interface{}{
		{"Title", report.Title},
		{"Source", report.Source},
		{"Period Start", report.Period.Start.Format("2006-01-02")},
		{"Period End", report.Period.End.Format("2006-01-02")},
		{"Orders", report.Orders},
		{"Total Sales", report.Analytics.TotalSales},
		{"Average Order Value", report.Analytics.AverageOrderValue},
	}

	status := [][]interface{}{{"Status", "Orders"}}
	for _, s := range report.Analytics.StatusData {
		status = append(status, []interface{}{string(s.Status), s.Count})
	}

	daily := [][]interface{}{{"Date", "Orders", "Amount"}}
	for _, d := range report.Analytics.DailyData {
		daily = append(daily, []interface{}{d.Date.Format("2006-01-02"), d.Count, d.Amount})
	}

	categories := [][]interface{}{{"Category", "Sales", "Percentage"}}
	for _, c := range report.Analytics.TopCategories {
		categories = append(categories, []interface{}{c.Category, c.Sales, c.Percentage})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetStatus, status},
		{SheetDaily, daily},
		{SheetCategories, categories},
	}
	for _, sheet := range sheets {
		if sheet.name != SheetSummary {
			if _, err := f.NewSheet(sheet.name); err != nil {
				f.Close()
				return nil, err
			}
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
