package output

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// Formatter renders a report into bytes. Implementations are stateless.
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	JSONFormatter{},
	HTMLFormatter{},
}

var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
}

// extensions maps a formatter name to the file extension used when saving
var extensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"json":         "json",
	"html":         "html",
}

// AvailableFormatterNames lists the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists accepted alternative names.
func AvailableFormatAliases() []string {
	return []string{"verbose", "console-verbose"}
}

// GetFormatterByName returns the formatter for name or an alias, nil if unknown.
func GetFormatterByName(name string) Formatter {
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// ExtensionFor returns the file extension for a formatter name.
func ExtensionFor(name string) string {
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	if ext, ok := extensions[name]; ok {
		return ext
	}
	return "txt"
}

// WriteFormatted renders report with f and writes it to
// financial_report_<timestamp>.<ext> in the working directory.
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("financial_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
