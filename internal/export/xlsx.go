package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fieldworkhq/leadspider/internal/model"
)

// sheetName is the worksheet that holds contact rows.
const sheetName = "Contacts"

// xlsxHeader is the column layout of the workbook. Keep in sync with
// contactRow below.
var xlsxHeader = []interface{}{"Email", "Name", "Title", "Phone", "Source URL", "Method", "Confidence"}

// XLSXExporter writes batches as Excel workbooks.
//
// Design decision: We use excelize rather than writing csv and asking
// users to convert because:
// 1. CRM imports almost always accept xlsx directly
// 2. A bold header row and sized columns make the file usable as-is
// 3. excelize is already in our dependency tree for no extra cost
type XLSXExporter struct{}

// NewXLSXExporter creates an XLSXExporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the batch to an xlsx workbook at path.
// The file is overwritten if it already exists.
func (e *XLSXExporter) Export(batch *model.Batch, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() //nolint:errcheck // Best effort cleanup of in-memory workbook
	}()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create worksheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default worksheet: %w", err)
	}

	if err := e.writeHeader(f); err != nil {
		return err
	}

	for i, c := range batch.Contacts {
		// Row 1 is the header, contacts start at row 2.
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, contactRow(c)); err != nil {
			return fmt.Errorf("write contact row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeHeader writes the bolded header row and sizes the columns.
func (e *XLSXExporter) writeHeader(f *excelize.File) error {
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return fmt.Errorf("size email column: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "D", 22); err != nil {
		return fmt.Errorf("size detail columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "E", "E", 40); err != nil {
		return fmt.Errorf("size source column: %w", err)
	}
	return nil
}

// contactRow converts a contact into a worksheet row.
func contactRow(c model.Contact) *[]interface{} {
	return &[]interface{}{
		c.Email,
		c.Name,
		c.Title,
		c.Phone,
		c.SourceURL,
		c.Method,
		string(c.Confidence),
	}
}
