package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The acting employee is read from the request's access token claims.
type AttendanceService interface {
	// CheckIn opens today's record for the authenticated employee
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes today's record and derives hours and final status
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// GetToday returns the authenticated employee's record for today
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetMyHistory returns the authenticated employee's records, newest first
	GetMyHistory(ctx context.Context, filter MonthFilter) ([]AttendanceResponse, error)

	// GetMySummary rolls up the authenticated employee's month, current month by default
	GetMySummary(ctx context.Context, filter MonthFilter) (Summary, error)

	// ListAttendance retrieves records for every employee (manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// GetEmployeeAttendance retrieves one employee's records (manager)
	GetEmployeeAttendance(ctx context.Context, employeeID string, filter MonthFilter) ([]AttendanceResponse, error)

	// GetTeamSummary rolls up a month per employee (manager)
	GetTeamSummary(ctx context.Context, filter MonthFilter) ([]EmployeeSummary, error)

	// GetTodayStatus joins the roster with today's records (manager)
	GetTodayStatus(ctx context.Context) ([]TodayStatusResponse, error)

	// Export returns rows for a CSV or XLSX report (manager)
	Export(ctx context.Context, filter ExportFilter) ([]ExportRow, error)
}
