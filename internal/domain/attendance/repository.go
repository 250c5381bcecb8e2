package attendance

import (
	"context"
	"time"
)

// ListFilter narrows List. Zero values disable a criterion. From and To are
// calendar dates; To is exclusive.
type ListFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
	Status     Status
	Department string
	Limit      int
}

// AttendanceRepository defines data access methods for attendance records.
// Dates passed in are calendar dates; implementations key on (employee, date).
type AttendanceRepository interface {
	// CheckIn atomically creates the day's record, or fills in the check-in of an
	// existing record that has none. Returns ErrAlreadyCheckedIn otherwise.
	CheckIn(ctx context.Context, employeeID string, date time.Time, at time.Time, status Status) (Attendance, error)

	// CheckOut closes an open record. Returns ErrAlreadyCheckedOut when the
	// record has already been closed.
	CheckOut(ctx context.Context, id string, at time.Time, hoursWorked float64, status Status) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// List returns records joined with employee details, newest date first.
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	// MarkAbsent inserts absent records for employees with no record on date and
	// returns how many were created.
	MarkAbsent(ctx context.Context, employeeIDs []string, date time.Time) (int64, error)
}
