// Package export renders extraction records as CSV and XLSX downloads.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"docext/internal/domain"
	"docext/internal/fields"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the export header row: record metadata followed by the legacy
// fields and the extended invoice fields. Receipts leave the invoice columns
// empty and vice versa.
var Columns = buildColumns()

func buildColumns() []string {
	cols := []string{"ID", "Document Type", "Source File", "Created At"}
	cols = append(cols, fields.ReceiptSchema...)
	cols = append(cols, fields.InvoiceSchema...)
	return cols
}

// CSVWriter wraps csv.Writer for exporting extraction records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteRecords converts a batch of extraction records to CSV rows and
// writes them.
func (w *CSVWriter) WriteRecords(recs []domain.ExtractionRecord) error {
	for i := range recs {
		if err := w.csv.Write(recordToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// recordToRow converts one extraction record to a row aligned with Columns.
// Fields absent from the record's schema stay empty.
func recordToRow(rec *domain.ExtractionRecord) []string {
	row := make([]string, 0, len(Columns))
	row = append(row,
		rec.ID.String(),
		string(rec.DocumentType),
		rec.SourceFile,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	for _, key := range fields.ReceiptSchema {
		row = append(row, rec.Fields[key])
	}
	for _, key := range fields.InvoiceSchema {
		row = append(row, rec.Fields[key])
	}
	return row
}
