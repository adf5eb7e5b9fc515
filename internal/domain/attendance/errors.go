package attendance

import "errors"

// Attendance domain errors
var (
	// ErrDuplicateRecord signals an insert that raced an existing
	// (employee, date) row. Callers treat it as "already exists".
	ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")

	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrInvalidFileType rejects uploads before ingestion starts.
	ErrInvalidFileType = errors.New("invalid file type: allowed extensions are csv, xls, xlsx")

	ErrEmptyImport = errors.New("no data rows found in file")
)
