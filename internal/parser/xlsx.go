package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/otohub/catalog-import/internal/importer"
)

// ParseXLSX reads the first sheet of an Excel workbook into raw rows.
// Values are taken as formatted by the sheet, so numeric cells arrive the
// way the user sees them and go through the same coercion as CSV cells.
func ParseXLSX(data []byte, columns []string) ([]importer.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty sheet %q", sheets[0])
	}

	return rowsFromRecords(records, columns)
}
