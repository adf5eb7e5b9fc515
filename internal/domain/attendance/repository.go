package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. Implementations
// must enforce the (employee_code, date) uniqueness invariant; concurrent
// generation runs rely on it instead of in-process locking.
type Repository interface {
	// GetByEmployeeAndDate returns nil without error when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Record, error)

	// Insert creates a record and returns ErrDuplicateRecord when the
	// (employee_code, date) key is already taken.
	Insert(ctx context.Context, record Record) (Record, error)

	// Update rewrites the time/status fields of an existing record.
	Update(ctx context.Context, employeeCode string, date time.Time, update RecordUpdate) error

	// MarkAbsent flips a single record to Absent through the standard
	// update path, but only while it still has no time-in and is not
	// already Absent.
	MarkAbsent(ctx context.Context, employeeCode string, date time.Time) error

	// BulkMarkAbsent marks every record on the date that has no time-in
	// and is not yet Absent, returning the affected count.
	BulkMarkAbsent(ctx context.Context, date time.Time) (int64, error)

	// ListByEmployee returns an employee's records ordered by date.
	ListByEmployee(ctx context.Context, employeeCode string) ([]Record, error)

	// RepairNumericEmployeeCodes rewrites records keyed by a numeric
	// internal id to the canonical employee code, returning the affected
	// count.
	RepairNumericEmployeeCodes(ctx context.Context) (int64, error)
}

// TxManager runs fn inside one storage transaction; repositories called
// with the ctx fn receives join that transaction. An error from fn rolls
// everything back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
