package ingest

import (
	"fmt"
	"regexp"
)

const (
	// headerScanRows bounds how deep into a sheet the locator looks before
	// giving up. Vendor exports put cover text and merged banners above the
	// header, never more than a screenful.
	headerScanRows = 20
	// headerMatchRatio is the share of a vendor's required fields a row must
	// match to qualify as the header.
	headerMatchRatio = 0.6
)

// tierColumnRe recognizes named support/warranty price columns such as
// "3Yr ProSupport Plus" or "5 Year Foundation Care".
var tierColumnRe = regexp.MustCompile(`(?i)\b\d+\s*(?:yr|yrs|year|years)\b.*(?:support|warranty|care|service)\b`)

// HeaderMap is the located header row plus the column-index to canonical
// field mapping derived from it.
type HeaderMap struct {
	Row     int           // 1-based source row number of the header
	Columns map[int]Field // column index -> canonical field
	Tiers   map[int]string // column index -> support tier name (verbatim label)
}

// ColumnOf returns the column index mapped to a field.
func (h *HeaderMap) ColumnOf(f Field) (int, bool) {
	for idx, field := range h.Columns {
		if field == f {
			return idx, true
		}
	}
	return -1, false
}

// LocateHeader scans the first headerScanRows rows of a sheet for the row
// holding the vendor's column labels. Matching is case-insensitive, trims
// whitespace and accepts the vendor synonym list; merged cells and blank
// leading rows show up as empty cells and are tolerated. When several rows
// qualify the topmost wins. Returns ErrHeaderNotFound when no row clears
// the match ratio.
func LocateHeader(sheet *Sheet, spec *VendorSpec) (*HeaderMap, error) {
	limit := len(sheet.Rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for _, row := range sheet.Rows[:limit] {
		hm := matchHeaderRow(row, spec)
		if hm != nil {
			return hm, nil
		}
	}
	return nil, fmt.Errorf("%w: vendor %s, sheet %q", ErrHeaderNotFound, spec.Vendor, sheet.Name)
}

func matchHeaderRow(row Row, spec *VendorSpec) *HeaderMap {
	columns := make(map[int]Field)
	tiers := make(map[int]string)
	matched := make(map[Field]bool)

	for idx, cell := range row.Cells {
		label := cell.String()
		if label == "" {
			continue
		}
		if field, ok := spec.Synonyms[normalizeLabel(label)]; ok {
			if _, taken := columns[idx]; !taken {
				columns[idx] = field
				matched[field] = true
			}
			continue
		}
		if tierColumnRe.MatchString(label) {
			tiers[idx] = label
		}
	}

	required := 0
	for _, f := range spec.Required {
		if matched[f] {
			required++
		}
	}
	if float64(required) < headerMatchRatio*float64(len(spec.Required)) {
		return nil
	}
	return &HeaderMap{Row: row.Index, Columns: columns, Tiers: tiers}
}
