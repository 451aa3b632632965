package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func xlsxFixture(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheet)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestOpenWorkbookXLSX(t *testing.T) {
	buf := xlsxFixture(t, "Quote", [][]interface{}{
		{"Lot Name", "Description", "SKU", "Qty", "Net Price"},
		{"Compute Lot A", "", "210-BFVW", nil, 3292},
		{"", "Intel Xeon Silver 4410Y", "338-BSTV", 2, nil},
	})

	wb, err := OpenWorkbook("quote.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "Quote" {
		t.Fatalf("sheets = %+v", wb.Sheets)
	}
	if len(wb.Sheets[0].Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(wb.Sheets[0].Rows))
	}

	price := wb.Sheets[0].Rows[1].Cell(4)
	if price.Kind != CellNumber {
		t.Errorf("price cell kind = %v, want number", price.Kind)
	}
	if v, ok := price.Float(); !ok || v != 3292 {
		t.Errorf("price = %v, want 3292", v)
	}
	if wb.Sheets[0].Rows[1].Index != 2 {
		t.Errorf("row index = %d, want 1-based source numbering", wb.Sheets[0].Rows[1].Index)
	}
}

func TestOpenWorkbookGarbageIsUnreadable(t *testing.T) {
	_, err := OpenWorkbook("quote.xlsx", strings.NewReader("this is not a zip archive"))
	if !errors.Is(err, ErrFileUnreadable) {
		t.Fatalf("err = %v, want ErrFileUnreadable", err)
	}
}

func TestOpenWorkbookCSV(t *testing.T) {
	csvData := "Lot Name,Description,SKU,Qty,Net Price\nCompute Lot A,,210-BFVW,,3292\n,Intel Xeon,338-BSTV,2,\n"

	wb, err := OpenWorkbook("export.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(wb.Sheets))
	}
	rows := wb.Sheets[0].Rows
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Cell(0).String() != "Lot Name" {
		t.Errorf("header cell = %q", rows[0].Cell(0).String())
	}
	if v, ok := rows[1].Cell(4).Float(); !ok || v != 3292 {
		t.Errorf("price = %v", v)
	}
}

func TestOpenWorkbookCSVWindows1252(t *testing.T) {
	// 0xE9 is é in windows-1252 and invalid UTF-8 on its own.
	raw := []byte("Description,Net Price\nCble r\xe9seau,25\n")

	wb, err := OpenWorkbook("legacy.csv", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	got := wb.Sheets[0].Rows[1].Cell(0).String()
	if !strings.Contains(got, "é") {
		t.Errorf("cell = %q, want decoded windows-1252 text", got)
	}
}

func TestOpenWorkbookCSVRaggedRows(t *testing.T) {
	csvData := "a,b,c\nonly one\nx,y\n"

	wb, err := OpenWorkbook("ragged.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ragged csv must be tolerated: %v", err)
	}
	if len(wb.Sheets[0].Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(wb.Sheets[0].Rows))
	}
	if !wb.Sheets[0].Rows[1].Cell(2).IsEmpty() {
		t.Error("short row must read as empty cells past its end")
	}
}
