package attendance

import (
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/pkg/shift"
)

// Record is one employee's attendance for one business date. The
// (EmployeeCode, Date) pair is unique in the store; the daily generator
// creates placeholder rows with every time and status field nil, and the
// importer or external time clock fills them in.
type Record struct {
	ID            string
	EmployeeCode  string
	Date          time.Time
	TimeIn        *time.Time
	TimeOut       *time.Time
	TimeInStatus  *shift.TimeInStatus
	TimeOutStatus *shift.TimeOutStatus
	Status        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecordUpdate carries the fields the engine is allowed to rewrite on an
// existing record. Nil status pointers clear the column, matching the
// recompute-from-times rule: a record with no time-out has no time-out
// status.
type RecordUpdate struct {
	TimeIn        *time.Time
	TimeOut       *time.Time
	TimeInStatus  *shift.TimeInStatus
	TimeOutStatus *shift.TimeOutStatus
	Status        *string
}

// StatusAbsent is the record-level status set by the absence sweep.
const StatusAbsent = "Absent"
