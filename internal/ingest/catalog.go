package ingest

import (
	"fmt"
	"strings"
)

// ValidCurrencies is the fixed set of accepted ISO codes.
var ValidCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"CHF": true,
}

// Configuration is one normalized component line of a model, in source-row
// order. Ordering has no meaning beyond display.
type Configuration struct {
	Position      int
	PartNumber    string
	Description   string
	Category      string
	Specification string
	Quantity      *float64
	UnitPrice     *float64
	SourceRow     int
}

// Pricing is the at-most-one price record of a model.
type Pricing struct {
	BasePrice  *float64
	NetPrice   *float64
	Currency   string
	Propagated bool // lot-level price covers the whole group
	Tiers      []TierPrice
}

// Model is one distinguishable server configuration/lot, vendor-agnostic in
// the output schema.
type Model struct {
	Name           string
	Code           string
	Specification  string
	Configurations []Configuration
	Pricing        *Pricing
}

// Catalog is the normalized output of one import pass, ready for
// persistence, together with its report.
type Catalog struct {
	Vendor Vendor
	Models []Model
	Report ImportReport
}

// Options steers one BuildCatalog pass.
type Options struct {
	// VendorHint is the explicit vendor identifier, if the uploader supplied
	// one. Empty means infer from filename/content.
	VendorHint string
	Filename   string
	// Currency is the basket-level currency applied when rows carry none.
	Currency string
}

// BuildCatalog runs the full pipeline over an opened workbook: vendor
// resolution, header location, row classification, field extraction,
// enrichment and assembly. Fatal conditions (unknown vendor, no header) are
// returned as errors; everything else degrades into the report.
func BuildCatalog(wb *Workbook, opts Options) (*Catalog, error) {
	vendor, ok := ParseVendor(opts.VendorHint)
	if !ok {
		vendor, ok = DetectVendor(opts.Filename, wb)
	}
	if !ok {
		return nil, ErrUnknownVendor
	}
	spec, ok := SpecFor(vendor)
	if !ok {
		return nil, ErrUnknownVendor
	}

	// The header may live on any sheet; the first sheet with a qualifying
	// row wins.
	var (
		sheet *Sheet
		hm    *HeaderMap
	)
	for i := range wb.Sheets {
		located, err := LocateHeader(&wb.Sheets[i], spec)
		if err == nil {
			sheet = &wb.Sheets[i]
			hm = located
			break
		}
	}
	if hm == nil {
		return nil, fmt.Errorf("%w: vendor %s", ErrHeaderNotFound, vendor)
	}

	cat := &Catalog{
		Vendor: vendor,
		Report: ImportReport{
			Vendor:    string(vendor),
			Sheet:     sheet.Name,
			HeaderRow: hm.Row,
		},
	}

	var dataRows []Row
	for _, row := range sheet.Rows {
		if row.Index > hm.Row {
			dataRows = append(dataRows, row)
		}
	}

	groups := GroupRows(dataRows, hm, spec, &cat.Report)
	for _, group := range groups {
		model := buildModel(group, hm, spec, opts, &cat.Report)
		if model == nil {
			continue
		}
		EnrichModel(model, spec)
		cat.Models = append(cat.Models, *model)
		cat.Report.ConfigurationsCreated += len(model.Configurations)
	}
	cat.Report.ModelsCreated = len(cat.Models)

	return cat, nil
}

// buildModel assembles one row group into a model. Returns nil when the
// group yields nothing persistable; its rows are then reported as skipped.
func buildModel(group RowGroup, hm *HeaderMap, spec *VendorSpec, opts Options, report *ImportReport) *Model {
	model := &Model{}

	var componentRows []Row
	switch spec.Grouping {
	case GroupOnLotStart:
		head := ExtractRow(group.First(), hm, spec)
		model.Name = head.LotName
		model.Code = head.PartNumber
		model.Specification = head.Specification
		model.Pricing = buildPricing(head, group.First().Index, opts, report)
		if head.Description != "" {
			// Some lot headers double as the base-unit component line.
			componentRows = group.Rows
		} else {
			componentRows = group.Rows[1:]
		}
	case GroupOnModelChange:
		head := ExtractRow(group.First(), hm, spec)
		model.Name = head.Model
		model.Code = head.Model
		model.Specification = head.Specification
		componentRows = group.Rows
		if spec.PropagateLotPrice {
			model.Pricing = buildPricing(head, group.First().Index, opts, report)
		}
	}

	for _, row := range componentRows {
		frag := ExtractRow(row, hm, spec)
		if frag.Description == "" {
			report.skip(row.Index, "missing description")
			continue
		}
		cfg := Configuration{
			Position:      len(model.Configurations) + 1,
			PartNumber:    frag.PartNumber,
			Description:   frag.Description,
			Specification: frag.Specification,
			SourceRow:     row.Index,
		}
		cfg.Quantity = nonNegative(frag.Quantity, row.Index, "quantity", report)
		cfg.UnitPrice = nonNegative(frag.NetPrice, row.Index, "price", report)
		model.Configurations = append(model.Configurations, cfg)
	}

	if len(model.Configurations) == 0 && model.Pricing == nil {
		for _, row := range group.Rows {
			report.skip(row.Index, "group produced no parsable rows")
		}
		return nil
	}
	if model.Name == "" {
		model.Name = fmt.Sprintf("Unnamed group (row %d)", group.First().Index)
		report.issue(fmt.Sprintf("row %d: group has no lot/model name", group.First().Index))
	}
	return model
}

func buildPricing(frag *RowFragment, rowIdx int, opts Options, report *ImportReport) *Pricing {
	if frag.ListPrice == nil && frag.NetPrice == nil && len(frag.Tiers) == 0 {
		return nil
	}
	p := &Pricing{
		Currency: resolveCurrency(frag.Currency, opts.Currency, rowIdx, report),
	}
	p.NetPrice = nonNegative(frag.NetPrice, rowIdx, "net price", report)
	p.BasePrice = nonNegative(frag.ListPrice, rowIdx, "list price", report)
	if p.BasePrice == nil {
		p.BasePrice = p.NetPrice
	}
	for _, tier := range frag.Tiers {
		if tier.Price < 0 {
			report.issue(fmt.Sprintf("row %d: negative %s price dropped", rowIdx, tier.Name))
			continue
		}
		p.Tiers = append(p.Tiers, tier)
	}
	if p.BasePrice == nil && p.NetPrice == nil && len(p.Tiers) == 0 {
		return nil
	}
	return p
}

// nonNegative drops negative values with an issue rather than persisting
// them; the field stays in an explicit unknown state.
func nonNegative(v *float64, rowIdx int, what string, report *ImportReport) *float64 {
	if v == nil {
		return nil
	}
	if *v < 0 {
		report.issue(fmt.Sprintf("row %d: negative %s dropped", rowIdx, what))
		return nil
	}
	return v
}

func resolveCurrency(rowCurrency, basketCurrency string, rowIdx int, report *ImportReport) string {
	cur := strings.ToUpper(strings.TrimSpace(rowCurrency))
	if ValidCurrencies[cur] {
		return cur
	}
	if cur != "" {
		report.issue(fmt.Sprintf("row %d: unknown currency %q, using basket currency", rowIdx, rowCurrency))
	}
	basket := strings.ToUpper(strings.TrimSpace(basketCurrency))
	if ValidCurrencies[basket] {
		return basket
	}
	return "USD"
}
