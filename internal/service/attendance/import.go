package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/shift"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/tabular"
)

// Header alias sets. Upload sources disagree on column naming; the first
// non-empty alias wins, in this order.
var (
	employeeAliases = []string{"employee_id", "emp_id", "employee_number", "employee_code", "employee", "id"}
	dateAliases     = []string{"date", "attendance_date", "day"}
	timeInAliases   = []string{"time_in", "in", "check_in"}
	timeOutAliases  = []string{"time_out", "out", "check_out"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
}

// Import implements attendance.Service. The whole batch runs inside one
// transaction: either every surviving row commits or, on a
// collaborator-level failure, nothing does. Individual bad rows are
// skipped or counted as errors and never abort the batch.
//
// Trade-off, inherited deliberately: one transaction per batch means a
// long file holds row locks for the batch duration. Chunking would be
// safe because every row write is an idempotent upsert, but batches here
// are hundreds of rows, not millions.
func (s *AttendanceServiceImpl) Import(ctx context.Context, req attendance.ImportRequest) (attendance.ImportSummary, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportSummary{}, err
	}

	table, err := tabular.Ingest(req.Data, req.Extension())
	if err != nil {
		return attendance.ImportSummary{}, err
	}
	if len(table.Rows) == 0 {
		return attendance.ImportSummary{}, attendance.ErrEmptyImport
	}

	summary := attendance.ImportSummary{ErrorSamples: []string{}}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		for idx, row := range table.Rows {
			if err := txCtx.Err(); err != nil {
				// Enclosing timeout/abort: roll the whole batch back.
				return err
			}

			outcome, rowErr := s.reconcileRow(txCtx, row)
			switch outcome {
			case attendance.RowInserted:
				summary.Inserted++
			case attendance.RowUpdated:
				summary.Updated++
			case attendance.RowSkipped:
				summary.Skipped++
			case attendance.RowErrored:
				summary.Errors++
				if len(summary.ErrorSamples) < attendance.MaxErrorSamples {
					// Header is file line 1, so the first data row is 2.
					summary.ErrorSamples = append(summary.ErrorSamples,
						fmt.Sprintf("Row %d: %v", idx+2, rowErr))
				}
			}
		}
		return nil
	})
	if err != nil {
		return attendance.ImportSummary{}, fmt.Errorf("import transaction failed: %w", err)
	}

	slog.Info("Attendance import completed",
		"actor", req.Actor,
		"file", req.Filename,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)

	return summary, nil
}

// reconcileRow runs steps 1-5 of the per-row contract. Skipped covers
// rows the file simply cannot address (no identifier, no usable date);
// Errored covers rows the store rejected.
func (s *AttendanceServiceImpl) reconcileRow(ctx context.Context, row tabular.Row) (attendance.RowOutcome, error) {
	token, hasToken := row.Value(employeeAliases...)
	rawDate, hasDate := row.Value(dateAliases...)
	if !hasToken || !hasDate {
		return attendance.RowSkipped, nil
	}

	code, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return attendance.RowErrored, err
	}
	if code == "" {
		return attendance.RowSkipped, nil
	}

	date, ok := s.parseDate(rawDate)
	if !ok {
		return attendance.RowSkipped, nil
	}

	// Unparseable time tokens degrade to "no value", never to a row
	// failure; any status columns in the file are ignored and statuses
	// are recomputed from the parsed times so stored times and stored
	// statuses can never disagree.
	timeIn := s.parseClockOnDate(row, timeInAliases, date)
	timeOut := s.parseClockOnDate(row, timeOutAliases, date)

	timeInStatus := s.schedule.ClassifyTimeIn(timeIn)
	var timeOutStatus *shift.TimeOutStatus
	if timeOut != nil {
		status := s.schedule.ClassifyTimeOut(*timeOut)
		timeOutStatus = &status
	}

	update := attendance.RecordUpdate{
		TimeIn:        timeIn,
		TimeOut:       timeOut,
		TimeInStatus:  &timeInStatus,
		TimeOutStatus: timeOutStatus,
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, code, date)
	if err != nil {
		return attendance.RowErrored, err
	}

	if existing != nil {
		// A time-in arriving for a swept record invalidates its Absent
		// mark; otherwise the record-level status is left as is.
		if timeIn == nil {
			update.Status = existing.Status
		}
		if err := s.attendanceRepo.Update(ctx, code, date, update); err != nil {
			return attendance.RowErrored, err
		}
		return attendance.RowUpdated, nil
	}

	_, err = s.attendanceRepo.Insert(ctx, attendance.Record{
		EmployeeCode:  code,
		Date:          date,
		TimeIn:        timeIn,
		TimeOut:       timeOut,
		TimeInStatus:  &timeInStatus,
		TimeOutStatus: timeOutStatus,
	})
	if err != nil {
		return attendance.RowErrored, err
	}
	return attendance.RowInserted, nil
}

func (s *AttendanceServiceImpl) parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, s.location); err == nil {
			return s.businessDate(parsed), true
		}
	}
	return time.Time{}, false
}

// parseClockOnDate combines a time-of-day token with the row's business
// date to form a full instant.
func (s *AttendanceServiceImpl) parseClockOnDate(row tabular.Row, aliases []string, date time.Time) *time.Time {
	raw, ok := row.Value(aliases...)
	if !ok {
		return nil
	}
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		instant := time.Date(date.Year(), date.Month(), date.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, s.location)
		return &instant
	}
	return nil
}
