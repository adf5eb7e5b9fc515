package employee

import "context"

// DirectoryRepository is the employee directory lookup surface the
// attendance engine consumes.
type DirectoryRepository interface {
	// FindCodeByInternalID maps a numeric surrogate id to the canonical
	// employee code, returning ErrEmployeeNotFound on a miss.
	FindCodeByInternalID(ctx context.Context, id int64) (string, error)

	// CodeExists reports whether a canonical code is registered.
	CodeExists(ctx context.Context, employeeCode string) (bool, error)

	// ListActive returns approved employees with a non-empty code,
	// ordered by code.
	ListActive(ctx context.Context) ([]Employee, error)

	// GetByUserID resolves the employee behind an authenticated user.
	GetByUserID(ctx context.Context, userID string) (Employee, error)
}
