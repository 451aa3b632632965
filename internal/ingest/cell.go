package ingest

import (
	"strconv"
	"strings"
	"unicode"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a tagged spreadsheet cell value: Empty, Text or Number. Raw cell
// values never travel past the extractor boundary; callers coerce explicitly
// via String and Float.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// NewCell classifies a raw cell string. A value that parses as a plain float
// becomes a Number cell; blank becomes Empty; everything else is Text.
func NewCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Kind: CellNumber, Number: f, Text: s}
	}
	return Cell{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the trimmed textual content of the cell, or "" for Empty.
func (c Cell) String() string {
	return c.Text
}

// Float coerces the cell to a number. Number cells convert directly; Text
// cells go through the tolerant numeric parser (currency symbols, thousands
// separators, parenthesized negatives). The second result reports success.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		return parseNumeric(c.Text)
	default:
		return 0, false
	}
}

var currencyCodes = []string{"USD", "EUR", "GBP", "CHF", "CNY", "JPY"}

// parseNumeric parses price-like strings: "$3,292.00", "1.234,56 EUR",
// "(120.50)". Returns false when the remainder is not numeric.
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	upper := strings.ToUpper(s)
	for _, code := range currencyCodes {
		upper = strings.TrimSpace(strings.TrimPrefix(upper, code))
		upper = strings.TrimSpace(strings.TrimSuffix(upper, code))
	}
	s = upper

	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '$' || r == '€' || r == '£' || r == '¥'
	})
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = s[1:]
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// European style: dots group thousands, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if thousandsGrouped(s, ',') {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// thousandsGrouped reports whether every separator-delimited group after the
// first has exactly three digits, e.g. "1,234,567".
func thousandsGrouped(s string, sep rune) bool {
	parts := strings.Split(s, string(sep))
	if len(parts) < 2 {
		return false
	}
	for i, p := range parts {
		if i == 0 {
			if len(p) == 0 || len(p) > 3 {
				return false
			}
			continue
		}
		if len(p) != 3 {
			return false
		}
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}
