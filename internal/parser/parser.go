// Package parser turns uploaded spreadsheet files into the raw rows the
// import engine consumes. A file that cannot be parsed at all is a run-level
// error, reported once before any row processing begins; individual cell
// problems are left for the engine to discover.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/otohub/catalog-import/internal/importer"
)

// MaxHeaderSearchRows is the maximum number of leading rows scanned for the
// header. Real-world exports often carry title or note rows above it.
const MaxHeaderSearchRows = 20

// Parse dispatches on the file extension and returns the data rows keyed by
// the domain's column labels. Fully empty rows are dropped; Line numbers
// refer to the source file, 1-based.
func Parse(filename string, data []byte, columns []string) ([]importer.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ParseCSV(data, columns)
	case ".xlsx":
		return ParseXLSX(data, columns)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(filename))
	}
}

// rowsFromRecords locates the header row and converts everything below it
// into raw rows. Cells are keyed by the lower-cased header label so lookup
// tolerates casing differences between template and upload.
func rowsFromRecords(records [][]string, columns []string) ([]importer.RawRow, error) {
	headerIdx := findHeader(records, columns)
	if headerIdx < 0 {
		return nil, fmt.Errorf("header row not found (expected columns like %v)", columns[:min(len(columns), 4)])
	}

	header := records[headerIdx]
	labels := make([]string, len(header))
	for i, h := range header {
		labels[i] = strings.ToLower(importer.CleanCell(h))
	}

	var rows []importer.RawRow
	for i, record := range records[headerIdx+1:] {
		if isEmptyRecord(record) {
			continue
		}

		cells := make(map[string]string, len(labels))
		for j, label := range labels {
			if label == "" || j >= len(record) {
				continue
			}
			cells[label] = record[j]
		}

		rows = append(rows, importer.RawRow{
			Line:  headerIdx + i + 2, // 1-based, after the header
			Cells: cells,
		})
	}

	return rows, nil
}

// findHeader scans the leading rows for the one that looks like the domain's
// header: at least two cells matching known column labels (or one, for
// single-column schemas).
func findHeader(records [][]string, columns []string) int {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[strings.ToLower(c)] = true
	}

	need := 2
	if len(columns) < 2 {
		need = 1
	}

	limit := min(len(records), MaxHeaderSearchRows)
	for i := 0; i < limit; i++ {
		matches := 0
		for _, cell := range records[i] {
			if known[strings.ToLower(importer.CleanCell(cell))] {
				matches++
			}
		}
		if matches >= need {
			return i
		}
	}
	return -1
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
