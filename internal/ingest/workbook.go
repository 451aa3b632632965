package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row is one source row with its 1-based row number preserved for the
// import report.
type Row struct {
	Index int
	Cells []Cell
}

// Cell returns the cell at column idx, Empty when the row is shorter.
func (r Row) Cell(idx int) Cell {
	if idx < 0 || idx >= len(r.Cells) {
		return Cell{Kind: CellEmpty}
	}
	return r.Cells[idx]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Sheet is a named 2-D grid of classified cells.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is the reader-side view of one uploaded file.
type Workbook struct {
	Sheets []Sheet
}

// OpenWorkbook reads an uploaded spreadsheet into classified cells. xlsx/xlsm
// go through excelize; csv exports (some vendors still ship them) are decoded
// with a windows-1252 fallback when the bytes are not valid UTF-8. Any open
// or read failure wraps ErrFileUnreadable.
func OpenWorkbook(filename string, r io.Reader) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return openCSV(r)
	default:
		return openExcel(r)
	}
}

func openExcel(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		raw, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", ErrFileUnreadable, name, err)
		}
		sheet := Sheet{Name: name}
		for i, rawRow := range raw {
			cells := make([]Cell, len(rawRow))
			for j, v := range rawRow {
				cells[j] = NewCell(v)
			}
			sheet.Rows = append(sheet.Rows, Row{Index: i + 1, Cells: cells})
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrFileUnreadable)
	}
	return wb, nil
}

func openCSV(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	if !utf8.Valid(data) {
		// Legacy exports are typically windows-1252.
		decoded, _, decErr := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if decErr != nil {
			return nil, fmt.Errorf("%w: decode csv: %v", ErrFileUnreadable, decErr)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrFileUnreadable, err)
	}

	sheet := Sheet{Name: "Sheet1"}
	for i, record := range records {
		cells := make([]Cell, len(record))
		for j, v := range record {
			cells[j] = NewCell(v)
		}
		sheet.Rows = append(sheet.Rows, Row{Index: i + 1, Cells: cells})
	}
	return &Workbook{Sheets: []Sheet{sheet}}, nil
}
