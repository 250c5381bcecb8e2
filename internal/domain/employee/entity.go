package employee

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Can view team attendance and dashboards
	RoleEmployee Role = "employee" // Regular employee, part of the roster
)

// Employee is a member of the organisation. Employees with RoleEmployee form
// the roster every attendance rollup is measured against.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	EmployeeCode string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if employee holds the manager role
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}

// OnRoster reports whether the employee is expected to record attendance.
func (e *Employee) OnRoster() bool {
	return e.Role == RoleEmployee
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleEmployee
}
