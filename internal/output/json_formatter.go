package output

import (
	"encoding/json"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// JSONFormatter renders the whole report as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
