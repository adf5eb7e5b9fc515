package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/doelski/mabinihub-backend-go/internal/domain/employee"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeDirectoryRepository struct {
	db *database.DB
}

func NewEmployeeDirectoryRepository(db *database.DB) employee.DirectoryRepository {
	return &employeeDirectoryRepository{db: db}
}

// FindCodeByInternalID implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) FindCodeByInternalID(ctx context.Context, id int64) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_code
		FROM employees
		WHERE id = $1
		  AND employee_code IS NOT NULL
		  AND employee_code != ''
		LIMIT 1
	`

	var code string
	if err := q.QueryRow(ctx, query, id).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to look up employee by internal id: %w", err)
	}
	return code, nil
}

// CodeExists implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) CodeExists(ctx context.Context, employeeCode string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees WHERE employee_code = $1
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}
	return exists, nil
}

// ListActive implements employee.DirectoryRepository. Only approved
// employees with a non-empty canonical code take part in generation.
func (r *employeeDirectoryRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, email, position, status
		FROM employees
		WHERE status = 'approved'
		  AND employee_code IS NOT NULL
		  AND employee_code != ''
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Position, &emp.Status); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// GetByUserID implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, e.email, e.position, e.status
		FROM employees e
		JOIN users u ON u.employee_id = e.id
		WHERE u.id = $1
		LIMIT 1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, userID).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Position, &emp.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}
	return emp, nil
}
