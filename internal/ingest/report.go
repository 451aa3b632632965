package ingest

// SkippedRow records one source row that could not be parsed, with enough
// context for the uploader to find it in the original file.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one import pass: what was created and what was
// skipped. Recoverable problems land here; they never abort the import.
type ImportReport struct {
	Vendor                string       `json:"vendor"`
	Sheet                 string       `json:"sheet"`
	HeaderRow             int          `json:"header_row"`
	ModelsCreated         int          `json:"models_created"`
	ConfigurationsCreated int          `json:"configurations_created"`
	SkippedRows           []SkippedRow `json:"skipped_rows"`
	Issues                []string     `json:"issues,omitempty"`
}

func (r *ImportReport) skip(row int, reason string) {
	r.SkippedRows = append(r.SkippedRows, SkippedRow{Row: row, Reason: reason})
}

func (r *ImportReport) issue(msg string) {
	r.Issues = append(r.Issues, msg)
}
