package parser

import (
	"strings"
	"testing"
)

var testColumns = []string{"Brand", "Product", "Sizes", "PriceMin", "PriceMax"}

func TestParseCSV(t *testing.T) {
	data := strings.Join([]string{
		"Brand,Product,Sizes",
		"Michelin,Pilot Sport 5,225/45R17",
		"Bridgestone,Turanza T005,205/55R16",
	}, "\n")

	rows, err := ParseCSV([]byte(data), testColumns)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Line != 2 || rows[1].Line != 3 {
		t.Errorf("lines = %d, %d, want 2, 3", rows[0].Line, rows[1].Line)
	}
	if got := rows[0].Get("Brand"); got != "Michelin" {
		t.Errorf("Brand = %q, want Michelin", got)
	}
	// Lookup tolerates casing differences between template and upload.
	if got := rows[1].Get("product"); got != "Turanza T005" {
		t.Errorf("product = %q, want Turanza T005", got)
	}
}

func TestParseCSVHeaderAfterPreamble(t *testing.T) {
	data := strings.Join([]string{
		"Tire catalog export",
		"Generated 2026-08-01,,",
		"Brand,Product,Sizes",
		"Michelin,Primacy 4,205/55R16",
	}, "\n")

	rows, err := ParseCSV([]byte(data), testColumns)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	// Line numbers refer to the source file, not the position below the
	// header.
	if rows[0].Line != 4 {
		t.Errorf("line = %d, want 4", rows[0].Line)
	}
}

func TestParseCSVSkipsEmptyRows(t *testing.T) {
	data := strings.Join([]string{
		"Brand,Product,Sizes",
		"Michelin,Primacy 4,205/55R16",
		",,",
		" , , ",
		"Bridgestone,Ecopia EP150,185/65R15",
	}, "\n")

	rows, err := ParseCSV([]byte(data), testColumns)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1].Line != 5 {
		t.Errorf("second row line = %d, want 5", rows[1].Line)
	}
}

func TestParseCSVBOMAndQuoting(t *testing.T) {
	data := "\uFEFFBrand,Product,Sizes\n" +
		`Michelin,"Pilot Sport, 5",="225/45R17"` + "\n"

	rows, err := ParseCSV([]byte(data), testColumns)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got := rows[0].Get("Product"); got != "Pilot Sport, 5" {
		t.Errorf("quoted cell = %q", got)
	}
	if got := rows[0].Get("Sizes"); got != "225/45R17" {
		t.Errorf("formula-quoted cell = %q", got)
	}
}

func TestParseCSVInvalidUTF8(t *testing.T) {
	data := append([]byte("Brand,Product,Sizes\nMichelin,Primacy "), 0xff, 0xfe)
	data = append(data, []byte(",205/55R16\n")...)

	rows, err := ParseCSV(data, testColumns)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got := rows[0].Get("Product"); !strings.Contains(got, "�") {
		t.Errorf("malformed bytes should become replacement runes, got %q", got)
	}
}

func TestParseCSVNoHeader(t *testing.T) {
	data := "just,some,unrelated\nvalues,in,cells\n"

	if _, err := ParseCSV([]byte(data), testColumns); err == nil {
		t.Fatal("expected error for a file without a recognizable header")
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	if _, err := ParseCSV(nil, testColumns); err == nil {
		t.Fatal("expected error for an empty file")
	}
}

func TestParseDispatch(t *testing.T) {
	csvData := []byte("Brand,Product,Sizes\nMichelin,Primacy 4,205/55R16\n")

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{name: "csv", filename: "catalog.csv"},
		{name: "csv uppercase extension", filename: "CATALOG.CSV"},
		{name: "txt treated as csv", filename: "export.txt"},
		{name: "unsupported", filename: "catalog.pdf", wantErr: true},
		{name: "no extension", filename: "catalog", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.filename, csvData, testColumns)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}
