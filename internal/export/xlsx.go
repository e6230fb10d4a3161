package export

import (
	"bytes"
	"time"

	"github.com/xuri/excelize/v2"

	"docext/internal/domain"
	"docext/internal/fields"
)

const sheetName = "Extractions"

// WriteXLSX renders extraction records as a single-sheet XLSX workbook with
// the same columns as the CSV export.
func WriteXLSX(recs []domain.ExtractionRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx := range recs {
		rec := &recs[rowIdx]
		row := rowIdx + 2

		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(sheetName, cell, v)
		}

		if err := write(1, rec.ID.String()); err != nil {
			return nil, err
		}
		if err := write(2, string(rec.DocumentType)); err != nil {
			return nil, err
		}
		if err := write(3, rec.SourceFile); err != nil {
			return nil, err
		}
		if err := write(4, rec.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return nil, err
		}

		col := 5
		for _, key := range fields.ReceiptSchema {
			if err := write(col, rec.Fields[key]); err != nil {
				return nil, err
			}
			col++
		}
		for _, key := range fields.InvoiceSchema {
			if err := write(col, rec.Fields[key]); err != nil {
				return nil, err
			}
			col++
		}
	}

	return f.WriteToBuffer()
}
