package attendance

import (
	"path/filepath"
	"strings"

	"github.com/doelski/mabinihub-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// GenerateSummary reports one daily-generation run. Rest days report zero
// records created with no writes performed.
type GenerateSummary struct {
	Date            string   `json:"date"`
	Day             string   `json:"day"`
	TotalEmployees  int      `json:"total_employees"`
	RecordsCreated  int      `json:"records_created"`
	RecordsExisting int      `json:"records_existing"`
	MarkedAbsent    int      `json:"marked_absent"`
	IsPastCutoff    bool     `json:"is_past_cutoff"`
	Errors          []string `json:"errors"`
	Message         string   `json:"message"`
}

// ImportSummary reports one bulk import batch. ErrorSamples carries at
// most five "Row N: message" entries; N counts file lines with the header
// as line 1.
type ImportSummary struct {
	Inserted     int      `json:"inserted"`
	Updated      int      `json:"updated"`
	Skipped      int      `json:"skipped"`
	Errors       int      `json:"errors"`
	ErrorSamples []string `json:"error_samples"`
}

// MaxErrorSamples caps how many row failures an ImportSummary quotes.
const MaxErrorSamples = 5

// ImportRequest is the validated upload before ingestion.
type ImportRequest struct {
	Filename string
	Data     []byte
	Actor    string
}

var allowedImportExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

func (r *ImportRequest) Extension() string {
	return strings.ToLower(filepath.Ext(r.Filename))
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file is required",
		})
	} else if !allowedImportExtensions[r.Extension()] {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: ErrInvalidFileType.Error(),
		})
	}

	if len(r.Data) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "uploaded file is empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RowOutcome is the per-row result variant collected into an
// ImportSummary. Partial failure is part of the contract: a malformed row
// never aborts the batch.
type RowOutcome int

const (
	RowInserted RowOutcome = iota
	RowUpdated
	RowSkipped
	RowErrored
)

// RecordView is the API shape of a stored record, with the flags the
// employee dashboard consumes.
type RecordView struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	TimeIn        *string `json:"time_in"`
	TimeOut       *string `json:"time_out"`
	TimeInStatus  *string `json:"time_in_status"`
	TimeOutStatus *string `json:"time_out_status"`
	Tardy         bool    `json:"tardy"`
	Undertime     bool    `json:"undertime"`
	Overtime      bool    `json:"overtime"`
}

// EmployeeSummary aggregates one employee's record list.
type EmployeeSummary struct {
	DaysPresent    int `json:"days_present"`
	DaysLate       int `json:"days_late"`
	DaysActive     int `json:"days_active"`
	DaysAbsent     int `json:"days_absent"`
	TotalTardy     int `json:"total_tardy"`
	TotalUndertime int `json:"total_undertime"`
	TotalOvertime  int `json:"total_overtime"`
	AttendanceRate int `json:"attendance_rate"`
}

// EmployeeAttendance is the self-service listing response.
type EmployeeAttendance struct {
	EmployeeCode string          `json:"employee_code"`
	Records      []RecordView    `json:"records"`
	Summary      EmployeeSummary `json:"summary"`
}

// RepairResult reports the numeric-id repair operation.
type RepairResult struct {
	UpdatedRows int64  `json:"updated_rows"`
	Message     string `json:"message"`
}
