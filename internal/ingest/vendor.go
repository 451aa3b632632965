package ingest

import (
	"strings"
)

// Vendor identifies the price-list layout family of an upload.
type Vendor string

const (
	VendorDell   Vendor = "dell"
	VendorLenovo Vendor = "lenovo"
	VendorHPE    Vendor = "hpe"
)

// Field is a canonical column in the normalized schema.
type Field string

const (
	FieldLotName       Field = "lot_name"
	FieldModel         Field = "model"
	FieldDescription   Field = "description"
	FieldPartNumber    Field = "part_number"
	FieldListPrice     Field = "list_price"
	FieldNetPrice      Field = "net_price"
	FieldCurrency      Field = "currency"
	FieldQuantity      Field = "quantity"
	FieldSpecification Field = "specification"
)

// GroupingMode selects how the row classifier decides that a new model/lot
// group starts.
type GroupingMode int

const (
	// GroupOnLotStart starts a new group whenever the group-driving cell is
	// non-empty (Dell: multiple component rows under one lot header).
	GroupOnLotStart GroupingMode = iota
	// GroupOnModelChange starts a new group whenever the group-driving cell
	// changes value from the previous row (Lenovo/HPE: one row per part,
	// repeated model column).
	GroupOnModelChange
)

// VendorSpec is the static, read-only per-vendor configuration table. Specs
// are built once at package load and never mutated.
type VendorSpec struct {
	Vendor   Vendor
	Synonyms map[string]Field // normalized header label -> canonical field
	Required []Field
	Grouping GroupingMode
	// GroupField drives the classifier state machine.
	GroupField Field
	// PropagateLotPrice applies a group-level price to the whole group when
	// per-row prices are absent. Vendor-configurable: the exact propagation
	// boundary differs between lot-grouped and part-grouped layouts.
	PropagateLotPrice bool
}

var vendorSpecs = map[Vendor]*VendorSpec{
	VendorDell: {
		Vendor: VendorDell,
		Synonyms: synonyms(map[Field][]string{
			FieldLotName:       {"lot", "lot name", "lot description", "solution", "config name"},
			FieldDescription:   {"description", "item description", "component", "component description", "product description"},
			FieldPartNumber:    {"sku", "sku number", "part number", "part #", "part no", "part no."},
			FieldListPrice:     {"list price", "unit list price", "msrp"},
			FieldNetPrice:      {"net price", "unit price", "price", "price (usd)", "price (eur)", "customer price"},
			FieldCurrency:      {"currency", "curr"},
			FieldQuantity:      {"qty", "quantity", "units"},
			FieldSpecification: {"specification", "specs", "technical description"},
		}),
		Required:          []Field{FieldLotName, FieldDescription, FieldNetPrice, FieldPartNumber, FieldQuantity},
		Grouping:          GroupOnLotStart,
		GroupField:        FieldLotName,
		PropagateLotPrice: true,
	},
	VendorLenovo: {
		Vendor: VendorLenovo,
		Synonyms: synonyms(map[Field][]string{
			FieldModel:         {"model", "machine type model", "mtm", "machine type", "server model"},
			FieldDescription:   {"description", "part description", "product description", "option description"},
			FieldPartNumber:    {"part number", "part #", "part no", "part no.", "option part number", "fru"},
			FieldListPrice:     {"list price", "web price", "srp"},
			FieldNetPrice:      {"net price", "unit price", "price", "topseller price"},
			FieldCurrency:      {"currency", "curr"},
			FieldQuantity:      {"qty", "quantity"},
			FieldSpecification: {"specification", "feature", "features"},
		}),
		Required:          []Field{FieldModel, FieldDescription, FieldPartNumber, FieldNetPrice, FieldQuantity},
		Grouping:          GroupOnModelChange,
		GroupField:        FieldModel,
		PropagateLotPrice: false,
	},
	VendorHPE: {
		Vendor: VendorHPE,
		Synonyms: synonyms(map[Field][]string{
			FieldModel:         {"model", "product", "product name", "base model"},
			FieldDescription:   {"description", "product description", "option description"},
			FieldPartNumber:    {"part number", "part #", "part no", "part no.", "sku"},
			FieldListPrice:     {"list price", "msrp"},
			FieldNetPrice:      {"net price", "unit price", "price", "quoted price"},
			FieldCurrency:      {"currency", "curr"},
			FieldQuantity:      {"qty", "quantity"},
			FieldSpecification: {"specification", "specs"},
		}),
		Required:          []Field{FieldModel, FieldDescription, FieldPartNumber, FieldNetPrice, FieldQuantity},
		Grouping:          GroupOnModelChange,
		GroupField:        FieldModel,
		PropagateLotPrice: true,
	},
}

func synonyms(m map[Field][]string) map[string]Field {
	out := make(map[string]Field)
	for field, labels := range m {
		for _, label := range labels {
			out[normalizeLabel(label)] = field
		}
	}
	return out
}

// normalizeLabel lowercases, trims and collapses inner whitespace so header
// matching is layout-tolerant.
func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// SpecFor returns the static spec for a vendor.
func SpecFor(v Vendor) (*VendorSpec, bool) {
	spec, ok := vendorSpecs[v]
	return spec, ok
}

// ParseVendor resolves a user-supplied vendor hint.
func ParseVendor(s string) (Vendor, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dell", "dell emc", "dellemc":
		return VendorDell, true
	case "lenovo":
		return VendorLenovo, true
	case "hpe", "hp", "hewlett packard enterprise":
		return VendorHPE, true
	}
	return "", false
}

// DetectVendor infers the vendor when no explicit hint is given: filename
// tokens first, then a scan of the leading sheet rows for vendor markers.
func DetectVendor(filename string, wb *Workbook) (Vendor, bool) {
	name := strings.ToLower(filename)
	for _, v := range []Vendor{VendorDell, VendorLenovo, VendorHPE} {
		if strings.Contains(name, string(v)) {
			return v, true
		}
	}

	if wb == nil {
		return "", false
	}
	markers := map[Vendor][]string{
		VendorDell:   {"dell", "poweredge", "prosupport"},
		VendorLenovo: {"lenovo", "thinksystem", "topseller"},
		VendorHPE:    {"hpe", "proliant", "foundation care"},
	}
	for _, sheet := range wb.Sheets {
		limit := len(sheet.Rows)
		if limit > headerScanRows {
			limit = headerScanRows
		}
		for _, row := range sheet.Rows[:limit] {
			for _, cell := range row.Cells {
				text := strings.ToLower(cell.String())
				if text == "" {
					continue
				}
				for v, words := range markers {
					for _, w := range words {
						if strings.Contains(text, w) {
							return v, true
						}
					}
				}
			}
		}
	}
	return "", false
}
