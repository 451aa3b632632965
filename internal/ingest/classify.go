package ingest

// RowGroup is a run of source rows belonging to one hardware model. The
// first row is the one that opened the group (the lot header for Dell, the
// first part row for Lenovo/HPE).
type RowGroup struct {
	Rows []Row
}

// First returns the row that opened the group.
func (g RowGroup) First() Row {
	return g.Rows[0]
}

type classifierState int

const (
	seekingLotStart classifierState = iota
	inLot
)

// GroupRows partitions the data rows below the header into model groups
// using a two-state machine. A new group opens when the vendor's grouping
// rule fires; rows that match neither pattern while no group is open are
// recorded as skipped, never fatal.
func GroupRows(rows []Row, hm *HeaderMap, spec *VendorSpec, report *ImportReport) []RowGroup {
	groupCol, hasGroupCol := hm.ColumnOf(spec.GroupField)

	var groups []RowGroup
	state := seekingLotStart
	prevValue := ""

	open := func(row Row) {
		groups = append(groups, RowGroup{Rows: []Row{row}})
		state = inLot
	}
	attach := func(row Row) {
		groups[len(groups)-1].Rows = append(groups[len(groups)-1].Rows, row)
	}

	for _, row := range rows {
		if row.IsBlank() {
			continue
		}

		if !hasGroupCol {
			// Degenerate layout: no group-driving column mapped. Treat every
			// row as its own single-row group rather than dropping data.
			open(row)
			continue
		}

		value := row.Cell(groupCol).String()
		switch spec.Grouping {
		case GroupOnLotStart:
			switch {
			case value != "":
				open(row)
				prevValue = value
			case state == inLot:
				attach(row)
			default:
				report.skip(row.Index, "row precedes the first lot header")
			}

		case GroupOnModelChange:
			switch {
			case value != "" && value != prevValue:
				open(row)
				prevValue = value
			case state == inLot:
				attach(row)
			default:
				report.skip(row.Index, "row has no model value and no open group")
			}
		}
	}

	return groups
}
