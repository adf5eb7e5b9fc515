package attendance

import (
	"context"
	"time"
)

// Service defines the attendance engine's operations.
type Service interface {
	// GenerateDaily ensures exactly one record exists per active employee
	// for the business date and marks no-shows Absent past the cutoff.
	// Safe to re-run and to race with itself.
	GenerateDaily(ctx context.Context, date time.Time) (GenerateSummary, error)

	// Import ingests an uploaded file and reconciles its rows into the
	// store inside one transaction.
	Import(ctx context.Context, req ImportRequest) (ImportSummary, error)

	// GetEmployeeAttendance lists the records and summary stats for one
	// employee.
	GetEmployeeAttendance(ctx context.Context, employeeCode string) (EmployeeAttendance, error)

	// RepairEmployeeCodes rewrites records still keyed by numeric internal
	// ids to canonical employee codes.
	RepairEmployeeCodes(ctx context.Context) (RepairResult, error)
}
