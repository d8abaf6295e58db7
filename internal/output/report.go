package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/horizonfp/horizon/internal/domain"
)

// Formatter renders run results in one concrete output format.
type Formatter interface {
	Name() string
	FormatProjection(result *domain.ProjectionResult) ([]byte, error)
	FormatSimulation(result *domain.SimulationResult) ([]byte, error)
	FormatComparison(result *domain.ScenarioComparison) ([]byte, error)
}

// NewFormatter returns the formatter registered for a format name. An empty
// name selects the console formatter.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "pdf":
		return PDFFormatter{}, nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// WriteProjection renders a projection result to w in the given format.
func WriteProjection(w io.Writer, result *domain.ProjectionResult, format string) error {
	formatter, err := NewFormatter(format)
	if err != nil {
		return err
	}
	data, err := formatter.FormatProjection(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteSimulation renders a Monte Carlo result to w in the given format.
func WriteSimulation(w io.Writer, result *domain.SimulationResult, format string) error {
	formatter, err := NewFormatter(format)
	if err != nil {
		return err
	}
	data, err := formatter.FormatSimulation(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteComparison renders a scenario comparison to w in the given format.
func WriteComparison(w io.Writer, result *domain.ScenarioComparison, format string) error {
	formatter, err := NewFormatter(format)
	if err != nil {
		return err
	}
	data, err := formatter.FormatComparison(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// JSONFormatter emits the result structures verbatim for downstream tools.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) FormatProjection(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (j JSONFormatter) FormatSimulation(result *domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (j JSONFormatter) FormatComparison(result *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
