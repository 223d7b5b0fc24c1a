package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{}

// RegisterFormatter makes a formatter available by name
func RegisterFormatter(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	RegisterFormatter(ConsoleFormatter{})
	RegisterFormatter(JSONFormatter{Pretty: true})
	RegisterFormatter(CSVFormatter{})
	RegisterFormatter(HTMLFormatter{})
}

// GetFormatterByName returns the registered formatter, or nil
func GetFormatterByName(name string) Formatter {
	return formatters[name]
}

// FormatterNames lists the registered formatter names
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render formats the report with the named formatter and writes it to w
func Render(w io.Writer, report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %v)", format, FormatterNames())
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted writes the formatted report to a timestamped file in the
// current directory and returns its name
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
