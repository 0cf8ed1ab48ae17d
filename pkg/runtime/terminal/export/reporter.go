package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Reporter renders an analytics report.
type Reporter interface {
	Handle(report *domain.Report) error
}

// NewReporter returns the reporter for format writing to writer.
func NewReporter(format Format, writer io.Writer) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewTextReporter(writer), nil
	case FormatJSON:
		return NewJSONReporter(writer), nil
	case FormatXLSX:
		return NewXLSXReporter(writer), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q (text, json, xlsx)", format)
	}
}

type TableConfig struct {
	NameWidth  int
	CountWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  24,
		CountWidth: 10,
		ValueWidth: 14,
	}
}

type TextReporter struct {
	writer io.Writer
	config TableConfig
}

func NewTextReporter(writer io.Writer) *TextReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &TextReporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const textTemplate = `
{{.Title}}: {{.Source}} ({{.Period.Duration}} days)

Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
Orders: {{.Orders}}
Total Sales: {{money .Analytics.TotalSales}}
Average Order Value: {{money .Analytics.AverageOrderValue}}

=== Orders by Status ===
{{separator}}
{{formatRow "Status" "Orders" ""}}
{{separator}}
{{range .Analytics.StatusData}}{{formatRow (print .Status) .Count ""}}
{{end}}{{separator}}

=== Daily Orders ===
{{separator}}
{{formatRow "Date" "Orders" "Amount"}}
{{separator}}
{{range .Analytics.DailyData}}{{formatRow (.Date.Format "2006-01-02") .Count (money .Amount)}}
{{end}}{{separator}}

=== Top Categories ===
{{separator}}
{{formatRow "Category" "Share" "Sales"}}
{{separator}}
{{range .Analytics.TopCategories}}{{formatRow .Category (percent .Percentage) (money .Sales)}}
{{end}}{{separator}}
`

func (c *TextReporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, count interface{}, value string) string {
			return fmt.Sprintf("| %-*s | %*v | %*s |",
				c.config.NameWidth, name,
				c.config.CountWidth, count,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(textTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
