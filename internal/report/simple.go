package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fieldworkhq/leadspider/internal/model"
)

// timeRounding trims sub-millisecond noise from durations in reports.
const timeRounding = time.Millisecond

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether a batch with no contacts still prints
	// the contacts section.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the batch in human-readable format.
func (w *SimpleWriter) Write(batch *model.Batch) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, batch)
	w.writeSummary(&sb, batch)
	w.writeContacts(&sb, batch)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, batch *model.Batch) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("LEADSPIDER CONTACT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Seed URL:      %s\n", batch.SeedURL))
	sb.WriteString(fmt.Sprintf("Mode:          %s\n", batch.Mode))
	sb.WriteString(fmt.Sprintf("Started:       %s\n", batch.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:      %s\n", batch.Duration().Round(timeRounding)))
	sb.WriteString(fmt.Sprintf("Pages Visited: %d\n", batch.PagesVisited))
	sb.WriteString(fmt.Sprintf("Status:        %s\n", statusText(batch)))
	sb.WriteString("\n")
}

// writeSummary writes contact counts broken down by confidence.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, batch *model.Batch) {
	var confirmed, generated int
	for _, c := range batch.Contacts {
		if c.Confidence == model.ConfidenceConfirmed {
			confirmed++
		} else {
			generated++
		}
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Total Contacts: %d\n", len(batch.Contacts)))
	sb.WriteString(fmt.Sprintf("  Confirmed:      %d\n", confirmed))
	sb.WriteString(fmt.Sprintf("  Generated:      %d\n", generated))
	sb.WriteString("\n")
}

// writeContacts writes one block per contact.
func (w *SimpleWriter) writeContacts(sb *strings.Builder, batch *model.Batch) {
	if len(batch.Contacts) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CONTACTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(batch.Contacts) == 0 {
		sb.WriteString("  No contacts found\n\n")
		return
	}

	for _, c := range batch.Contacts {
		sb.WriteString(fmt.Sprintf("  * %s\n", c.Email))
		if c.Name != "" {
			sb.WriteString(fmt.Sprintf("    Name: %s\n", c.Name))
		}
		if c.Title != "" {
			sb.WriteString(fmt.Sprintf("    Title: %s\n", c.Title))
		}
		if c.Phone != "" {
			sb.WriteString(fmt.Sprintf("    Phone: %s\n", c.Phone))
		}
		if w.verbose {
			sb.WriteString(fmt.Sprintf("    Source: %s\n", c.SourceURL))
			sb.WriteString(fmt.Sprintf("    Method: %s (%s)\n", c.Method, c.Confidence))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by leadspider\n")
	sb.WriteString("https://github.com/fieldworkhq/leadspider\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// statusText returns the status line shown in reports.
// A timed-out batch still carries whatever was collected before the
// deadline, so the text makes the partial nature explicit.
func statusText(batch *model.Batch) string {
	if batch.Status == model.StatusTimedOut {
		return "TIMED OUT (partial results)"
	}
	return "Complete"
}
