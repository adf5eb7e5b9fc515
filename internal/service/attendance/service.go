package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/domain/employee"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/shift"
)

// AttendanceServiceImpl is the attendance engine: daily record
// generation, bulk import reconciliation and the read-side views. The
// engine is single-threaded per invocation; concurrent runs are resolved
// by the store's (employee_code, date) uniqueness constraint, not by
// in-process locking.
type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	directoryRepo  employee.DirectoryRepository
	resolver       *IdentityResolver
	txManager      attendance.TxManager
	schedule       shift.Schedule
	location       *time.Location

	// now is stubbed in tests for deterministic cutoff handling.
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	directoryRepo employee.DirectoryRepository,
	txManager attendance.TxManager,
	schedule shift.Schedule,
	location *time.Location,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		directoryRepo:  directoryRepo,
		resolver:       NewIdentityResolver(directoryRepo),
		txManager:      txManager,
		schedule:       schedule,
		location:       location,
		now:            time.Now,
	}
}

var _ attendance.Service = (*AttendanceServiceImpl)(nil)

// businessDate normalizes an instant to midnight of its calendar day in
// the application timezone, the canonical form of a business date.
func (s *AttendanceServiceImpl) businessDate(t time.Time) time.Time {
	local := t.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
}

// GetEmployeeAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeCode string) (attendance.EmployeeAttendance, error) {
	if employeeCode == "" {
		return attendance.EmployeeAttendance{}, employee.ErrNoEmployeeCode
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeCode)
	if err != nil {
		return attendance.EmployeeAttendance{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	result := attendance.EmployeeAttendance{
		EmployeeCode: employeeCode,
		Records:      make([]attendance.RecordView, 0, len(records)),
	}

	summary := &result.Summary
	for _, rec := range records {
		view := attendance.RecordView{
			ID:            rec.ID,
			Date:          rec.Date.Format("2006-01-02"),
			TimeIn:        formatClock(rec.TimeIn),
			TimeOut:       formatClock(rec.TimeOut),
			TimeInStatus:  timeInStatusString(rec.TimeInStatus),
			TimeOutStatus: timeOutStatusString(rec.TimeOutStatus),
		}
		view.Tardy = rec.TimeInStatus != nil && *rec.TimeInStatus == shift.TimeInLate
		view.Undertime = rec.TimeOutStatus != nil && *rec.TimeOutStatus == shift.TimeOutUndertime
		view.Overtime = rec.TimeOutStatus != nil && *rec.TimeOutStatus == shift.TimeOutOvertime
		result.Records = append(result.Records, view)

		switch {
		case rec.TimeInStatus != nil && *rec.TimeInStatus == shift.TimeInPresent:
			summary.DaysPresent++
		case rec.TimeInStatus != nil && *rec.TimeInStatus == shift.TimeInLate:
			summary.DaysLate++
		}
		if rec.TimeIn == nil || (rec.TimeInStatus != nil && *rec.TimeInStatus == shift.TimeInAbsent) {
			summary.DaysAbsent++
		}
		if view.Tardy {
			summary.TotalTardy++
		}
		if view.Undertime {
			summary.TotalUndertime++
		}
		if view.Overtime {
			summary.TotalOvertime++
		}
	}

	summary.DaysActive = summary.DaysPresent + summary.DaysLate
	if len(records) > 0 {
		summary.AttendanceRate = int(float64(summary.DaysActive)/float64(len(records))*100 + 0.5)
	}

	return result, nil
}

// RepairEmployeeCodes implements attendance.Service.
func (s *AttendanceServiceImpl) RepairEmployeeCodes(ctx context.Context) (attendance.RepairResult, error) {
	updated, err := s.attendanceRepo.RepairNumericEmployeeCodes(ctx)
	if err != nil {
		return attendance.RepairResult{}, err
	}
	return attendance.RepairResult{
		UpdatedRows: updated,
		Message:     "Mapped numeric identifiers to canonical employee codes",
	}, nil
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("03:04 PM")
	return &formatted
}

func timeInStatusString(s *shift.TimeInStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func timeOutStatusString(s *shift.TimeOutStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
