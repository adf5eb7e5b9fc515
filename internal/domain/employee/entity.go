package employee

// Employee is the read-only directory view this engine consumes. The
// directory service owns the data; only approved employees with a
// non-empty canonical code take part in attendance generation.
type Employee struct {
	ID           int64
	EmployeeCode string
	FullName     string
	Email        string
	Position     string
	Status       Status
}

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// Active reports whether the employee participates in daily generation.
func (e Employee) Active() bool {
	return e.Status == StatusApproved && e.EmployeeCode != ""
}
