package response

import (
	"errors"
	"net/http"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/domain/employee"
	"github.com/doelski/mabinihub-backend-go/internal/domain/user"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/tabular"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var formatErr *tabular.FormatError
	if errors.As(err, &formatErr) {
		BadRequest(w, formatErr.Error(), nil)
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEmptyImport):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance record already exists for this date")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoEmployeeCode):
		NotFound(w, err.Error())

	// Access errors
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
