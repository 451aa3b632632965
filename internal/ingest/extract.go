package ingest

import "regexp"

// RowFragment is the partial configuration/pricing slice extracted from one
// source row. Optional fields that fail to parse stay nil/empty; the caller
// decides whether a missing description makes the row unparsed.
type RowFragment struct {
	LotName       string
	Model         string
	Description   string
	PartNumber    string
	Specification string
	Currency      string
	Quantity      *float64
	ListPrice     *float64
	NetPrice      *float64
	Tiers         []TierPrice
}

// TierPrice is one named support/warranty price read from a tier column.
type TierPrice struct {
	Name  string
	Price float64
}

// partNumberRe is the content fallback when no part-number column is mapped:
// Dell SKUs ("338-BSTV"), Lenovo 7-char options ("4XB7A13555"-style prefixes
// included via the general alternative).
var partNumberRe = regexp.MustCompile(`^(?:[0-9A-Z]{3}-[0-9A-Z]{4,6}|[0-9][0-9A-Z]{6,9})$`)

// ExtractRow maps the located columns of one row onto a RowFragment. Numeric
// parsing is tolerant (thousands separators, currency symbols); a parse
// failure on an optional field leaves it empty rather than erroring.
func ExtractRow(row Row, hm *HeaderMap, spec *VendorSpec) *RowFragment {
	frag := &RowFragment{}

	for idx, field := range hm.Columns {
		cell := row.Cell(idx)
		if cell.IsEmpty() {
			continue
		}
		switch field {
		case FieldLotName:
			frag.LotName = cell.String()
		case FieldModel:
			frag.Model = cell.String()
		case FieldDescription:
			frag.Description = cell.String()
		case FieldPartNumber:
			frag.PartNumber = cell.String()
		case FieldSpecification:
			frag.Specification = cell.String()
		case FieldCurrency:
			frag.Currency = cell.String()
		case FieldQuantity:
			if v, ok := cell.Float(); ok {
				frag.Quantity = &v
			}
		case FieldListPrice:
			if v, ok := cell.Float(); ok {
				frag.ListPrice = &v
			}
		case FieldNetPrice:
			if v, ok := cell.Float(); ok {
				frag.NetPrice = &v
			}
		}
	}

	for idx, name := range hm.Tiers {
		if v, ok := row.Cell(idx).Float(); ok {
			frag.Tiers = append(frag.Tiers, TierPrice{Name: name, Price: v})
		}
	}

	if frag.PartNumber == "" {
		if _, mapped := hm.ColumnOf(FieldPartNumber); !mapped {
			frag.PartNumber = fallbackPartNumber(row, hm)
		}
	}

	return frag
}

// fallbackPartNumber scans unmapped cells for something shaped like a part
// number. Preserves the cell content verbatim when it matches.
func fallbackPartNumber(row Row, hm *HeaderMap) string {
	for idx, cell := range row.Cells {
		if _, mapped := hm.Columns[idx]; mapped {
			continue
		}
		if _, tier := hm.Tiers[idx]; tier {
			continue
		}
		if cell.Kind != CellText {
			continue
		}
		if partNumberRe.MatchString(cell.Text) {
			return cell.Text
		}
	}
	return ""
}
