package report

import (
	"encoding/csv"
	"io"

	"github.com/fieldworkhq/leadspider/internal/model"
)

// csvHeader is the column layout shared by CSV reports and spreadsheet
// exports. Column order matters: downstream consumers import these files
// into CRM tools that map columns by position.
var csvHeader = []string{"email", "name", "title", "phone", "source_url", "method", "confidence"}

// CSVWriter outputs batch contacts in CSV format.
// This format is designed for spreadsheet import and CRM ingestion.
//
// Design decision: We use the standard encoding/csv package because the
// output is a flat record list with no styling needs. The richer
// excelize-based exporter lives in internal/export for callers that want
// formatted workbooks.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the batch contacts as CSV rows with a header line.
// Batch metadata (seed, mode, status) is not included; CSV consumers
// want one contact per row and nothing else.
func (w *CSVWriter) Write(batch *model.Batch) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, err
	}

	for _, c := range batch.Contacts {
		record := []string{
			c.Email,
			c.Name,
			c.Title,
			c.Phone,
			c.SourceURL,
			c.Method,
			string(c.Confidence),
		}
		if err := cw.Write(record); err != nil {
			return counter.n, err
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// countingWriter tracks bytes written so CSVWriter can satisfy the
// Writer interface's byte count contract.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
