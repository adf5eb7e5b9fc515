package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
)

// GenerateDaily implements attendance.Service. For the given business
// date it moves every active employee through the
// NoRecord -> Placeholder -> (Resolved | MarkedAbsent) lifecycle:
// placeholders are inserted where no record exists, and once the cutoff
// has passed, records still without a time-in are marked Absent.
//
// The whole operation is idempotent. Re-running can only re-apply writes
// that are already conditional: inserts are insert-if-absent (a unique
// violation counts as "exists"), and the absent mark only touches rows
// with no time-in that are not Absent yet, so it never reverts a
// determination or clobbers a real clock-in.
func (s *AttendanceServiceImpl) GenerateDaily(ctx context.Context, date time.Time) (attendance.GenerateSummary, error) {
	businessDate := s.businessDate(date)
	now := s.now().In(s.location)

	summary := attendance.GenerateSummary{
		Date:         businessDate.Format("2006-01-02"),
		Day:          businessDate.Weekday().String(),
		IsPastCutoff: s.schedule.IsPastCutoff(businessDate, now),
		Errors:       []string{},
	}

	if s.schedule.IsRestDay(businessDate) {
		summary.Message = "Rest day - no attendance records generated"
		return summary, nil
	}

	employees, err := s.directoryRepo.ListActive(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list active employees: %w", err)
	}
	summary.TotalEmployees = len(employees)

	if len(employees) == 0 {
		summary.Message = "No approved employees found"
		return summary, nil
	}

	for _, emp := range employees {
		if !emp.Active() {
			continue
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.EmployeeCode, businessDate)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", emp.EmployeeCode, err))
			continue
		}

		if existing == nil {
			_, err := s.attendanceRepo.Insert(ctx, attendance.Record{
				EmployeeCode: emp.EmployeeCode,
				Date:         businessDate,
			})
			if err != nil {
				// A racing generation run inserted first; that is the
				// outcome we wanted anyway.
				if errors.Is(err, attendance.ErrDuplicateRecord) {
					summary.RecordsExisting++
					continue
				}
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", emp.EmployeeCode, err))
				continue
			}
			summary.RecordsCreated++
			continue
		}

		summary.RecordsExisting++
		if summary.IsPastCutoff && existing.TimeIn == nil && !isAbsent(existing) {
			if err := s.attendanceRepo.MarkAbsent(ctx, emp.EmployeeCode, businessDate); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", emp.EmployeeCode, err))
			}
		}
	}

	// Safety-net sweep: catches records the per-employee pass never saw,
	// such as rows predating a directory change or manual edits.
	if summary.IsPastCutoff {
		marked, err := s.attendanceRepo.BulkMarkAbsent(ctx, businessDate)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("bulk absence sweep: %v", err))
		} else {
			summary.MarkedAbsent = int(marked)
		}
	}

	summary.Message = "Daily attendance records generated"
	slog.Info("Daily generation completed",
		"date", summary.Date,
		"created", summary.RecordsCreated,
		"existing", summary.RecordsExisting,
		"marked_absent", summary.MarkedAbsent,
		"errors", len(summary.Errors),
	)

	return summary, nil
}

func isAbsent(rec *attendance.Record) bool {
	return rec.TimeInStatus != nil && string(*rec.TimeInStatus) == attendance.StatusAbsent
}
