package ingest

import "errors"

// Fatal import errors. Anything else that goes wrong during a parse is
// recoverable and accumulates into the ImportReport instead.
var (
	// ErrFileUnreadable means the uploaded bytes are not a spreadsheet we
	// can open at all.
	ErrFileUnreadable = errors.New("file is not a readable spreadsheet")

	// ErrHeaderNotFound means no sheet contained a recognizable header row
	// for the detected vendor within the scan window.
	ErrHeaderNotFound = errors.New("no recognizable header row found")

	// ErrUnknownVendor means the vendor could not be resolved from the
	// hint, the filename or the sheet content.
	ErrUnknownVendor = errors.New("vendor could not be determined")
)
