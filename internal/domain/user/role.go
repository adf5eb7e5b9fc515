package user

import "errors"

// Role mirrors the account service's role claim. This backend only gates
// on roles; accounts themselves live elsewhere.
type Role string

const (
	RoleHR             Role = "hr"
	RoleSuperadmin     Role = "superadmin"
	RoleDepartmentHead Role = "department_head"
	RoleEmployee       Role = "employee"
)

var (
	ErrHRAccessRequired = errors.New("hr access required")
	ErrInvalidToken     = errors.New("invalid or missing access token")
)

// CanManageAttendance reports whether the role may import files, trigger
// generation runs and repair record keys.
func CanManageAttendance(r Role) bool {
	return r == RoleHR || r == RoleSuperadmin
}
