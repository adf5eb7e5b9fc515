package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/domain/employee"
	"github.com/doelski/mabinihub-backend-go/internal/handler/http/response"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/validator"
	"github.com/doelski/mabinihub-backend-go/internal/service/file"
)

type AttendanceHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	RepairEmployeeCodes(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	directoryRepo     employee.DirectoryRepository
	fileService       file.FileService
	location          *time.Location
}

func NewAttendanceHandler(
	attendanceService attendance.Service,
	directoryRepo employee.DirectoryRepository,
	fileService file.FileService,
	location *time.Location,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		directoryRepo:     directoryRepo,
		fileService:       fileService,
		location:          location,
	}
}

// Import implements AttendanceHandler.
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer upload.Close()

	data, err := io.ReadAll(upload)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	req := attendance.ImportRequest{
		Filename: header.Filename,
		Data:     data,
		Actor:    actorFromClaims(r),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Archive before parsing so a rejected batch can still be audited.
	if _, err := h.fileService.SaveImportFile(r.Context(), header.Filename, data); err != nil {
		slog.Error("Failed to archive import file", "file", header.Filename, "error", err)
	}

	summary, err := h.attendanceService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance import completed", summary)
}

// Generate implements AttendanceHandler.
func (h *attendanceHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		date = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.location)
	}

	summary, err := h.attendanceService.GenerateDaily(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, summary.Message, summary)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	emp, err := h.directoryRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), emp.EmployeeCode)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RepairEmployeeCodes implements AttendanceHandler.
func (h *attendanceHandlerImpl) RepairEmployeeCodes(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.RepairEmployeeCodes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// actorFromClaims identifies the uploading user for the audit log. Import
// works without it; an anonymous actor is logged as "unknown".
func actorFromClaims(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "unknown"
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	return "unknown"
}
