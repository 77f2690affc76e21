package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/fieldworkhq/leadspider/internal/model"
)

// MarkdownWriter outputs batches in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the batch in Markdown format.
func (w *MarkdownWriter) Write(batch *model.Batch) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, batch)
	w.writeContacts(md, batch)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, batch *model.Batch) {
	md.H1("Leadspider Contact Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + batch.SeedURL + "`"},
			{"Mode", batch.Mode},
			{"Started", batch.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", batch.Duration().Round(timeRounding).String()},
			{"Pages Visited", strconv.Itoa(batch.PagesVisited)},
			{"Status", w.getStatusText(batch)},
			{"Contacts", strconv.Itoa(len(batch.Contacts))},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on batch state.
func (w *MarkdownWriter) getStatusText(batch *model.Batch) string {
	if batch.Status == model.StatusTimedOut {
		return "⚠️ Timed Out (partial results)"
	}
	return "✅ Complete"
}

// writeContacts writes the contact table.
func (w *MarkdownWriter) writeContacts(md *markdown.Markdown, batch *model.Batch) {
	md.H2("Contacts")
	md.PlainText("")

	if len(batch.Contacts) == 0 {
		md.PlainText("No contacts found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(batch.Contacts))
	for _, c := range batch.Contacts {
		rows = append(rows, []string{
			c.Email,
			c.Name,
			c.Title,
			c.Phone,
			string(c.Confidence),
			c.SourceURL,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Email", "Name", "Title", "Phone", "Confidence", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}
