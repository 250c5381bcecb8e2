package attendance

import (
	"time"
)

// Attendance is one employee's record for one calendar day. Only the calendar
// date of Date is meaningful; stores keep it as midnight UTC.
type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	Status      Status
	HoursWorked float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeCode  *string
	Department    *string
}

// HasCheckedIn reports whether a check-in exists for the day.
func (a *Attendance) HasCheckedIn() bool {
	return a.CheckIn != nil
}

// HasCheckedOut reports whether the day has been closed.
func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOut != nil
}
