package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const uniqueViolation = "23505"

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, time_in, time_out,
		       time_in_status, time_out_status, status,
		       created_at, updated_at
		FROM attendance_records
		WHERE employee_code = $1
		  AND date = $2
		LIMIT 1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, employeeCode, date).Scan(
		&rec.ID, &rec.EmployeeCode, &rec.Date, &rec.TimeIn, &rec.TimeOut,
		&rec.TimeInStatus, &rec.TimeOutStatus, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no existing record for this employee and date
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// Insert implements attendance.Repository. A unique violation on the
// (employee_code, date) key comes back as ErrDuplicateRecord so callers
// can treat a lost race as "already exists".
func (r *attendanceRepository) Insert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_code, date, time_in, time_out,
			time_in_status, time_out_status, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeCode,
		rec.Date,
		rec.TimeIn,
		rec.TimeOut,
		rec.TimeInStatus,
		rec.TimeOutStatus,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to insert attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.Repository. All time/status columns are
// rewritten from the update value; nil pointers clear their columns so a
// re-import can null a removed time-out.
func (r *attendanceRepository) Update(ctx context.Context, employeeCode string, date time.Time, update attendance.RecordUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_in = $1,
		    time_out = $2,
		    time_in_status = $3,
		    time_out_status = $4,
		    status = $5,
		    updated_at = NOW()
		WHERE employee_code = $6
		  AND date = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		update.TimeIn,
		update.TimeOut,
		update.TimeInStatus,
		update.TimeOutStatus,
		update.Status,
		employeeCode,
		date,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// MarkAbsent implements attendance.Repository. The guard predicate lives
// in the statement so a concurrent time-in between read and write can
// never be overwritten to Absent.
func (r *attendanceRepository) MarkAbsent(ctx context.Context, employeeCode string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_in_status = 'Absent',
		    status = 'Absent',
		    updated_at = NOW()
		WHERE employee_code = $1
		  AND date = $2
		  AND time_in IS NULL
		  AND (time_in_status IS NULL OR time_in_status != 'Absent')
	`

	if _, err := q.Exec(ctx, query, employeeCode, date); err != nil {
		return fmt.Errorf("failed to mark record absent: %w", err)
	}
	return nil
}

// BulkMarkAbsent implements attendance.Repository.
func (r *attendanceRepository) BulkMarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_in_status = 'Absent',
		    status = 'Absent',
		    updated_at = NOW()
		WHERE date = $1
		  AND time_in IS NULL
		  AND (time_in_status IS NULL OR time_in_status != 'Absent')
	`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk mark absences: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByEmployee implements attendance.Repository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeCode string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, time_in, time_out,
		       time_in_status, time_out_status, status,
		       created_at, updated_at
		FROM attendance_records
		WHERE employee_code = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeCode, &rec.Date, &rec.TimeIn, &rec.TimeOut,
			&rec.TimeInStatus, &rec.TimeOutStatus, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// RepairNumericEmployeeCodes implements attendance.Repository. Records
// written before identifier resolution existed may still be keyed by the
// numeric internal id; this rewrites them to the canonical code in bulk.
func (r *attendanceRepository) RepairNumericEmployeeCodes(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records a
		SET employee_code = e.employee_code,
		    updated_at = NOW()
		FROM employees e
		WHERE a.employee_code ~ '^[0-9]+$'
		  AND a.employee_code = e.id::text
		  AND e.employee_code IS NOT NULL
		  AND e.employee_code != ''
	`

	tag, err := q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to repair employee codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
