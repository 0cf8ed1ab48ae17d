package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/de-tools/fabric-atlas/pkg/adapters"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
)

// JSONReporter writes the report in the web API's JSON shape.
type JSONReporter struct {
	writer io.Writer
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONReporter{writer: writer}
}

func (j *JSONReporter) Handle(report *domain.Report) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(adapters.MapReportDomainToApi(report))
}
