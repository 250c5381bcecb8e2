package attendance

import (
	"strings"
	"time"

	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/validator"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeEmail *string `json:"employee_email,omitempty"`
	EmployeeCode  *string `json:"employee_code,omitempty"`
	Department    *string `json:"department,omitempty"`
	Date          string  `json:"date"`
	CheckInTime   *string `json:"check_in_time,omitempty"`
	CheckOutTime  *string `json:"check_out_time,omitempty"`
	Status        Status  `json:"status"`
	HoursWorked   float64 `json:"hours_worked"`
}

// TodayResponse describes the caller's record for the current day. Without a
// record the status is absent.
type TodayResponse struct {
	CheckedIn    bool    `json:"checked_in"`
	CheckedOut   bool    `json:"checked_out"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       Status  `json:"status"`
	HoursWorked  float64 `json:"hours_worked"`
}

// TodayStatusResponse is one roster member joined with their record for today.
type TodayStatusResponse struct {
	Employee employee.ProfileResponse `json:"employee"`
	TodayResponse
}

// NewAttendanceResponse renders a record with its timestamps in loc.
func NewAttendanceResponse(att Attendance, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		EmployeeName:  att.EmployeeName,
		EmployeeEmail: att.EmployeeEmail,
		EmployeeCode:  att.EmployeeCode,
		Department:    att.Department,
		Date:          worktime.FormatDate(att.Date),
		CheckInTime:   formatTime(att.CheckIn, loc),
		CheckOutTime:  formatTime(att.CheckOut, loc),
		Status:        att.Status,
		HoursWorked:   att.HoursWorked,
	}
}

// NewTodayResponse treats a missing record as absent.
func NewTodayResponse(record *Attendance, loc *time.Location) TodayResponse {
	if record == nil {
		return TodayResponse{Status: StatusAbsent}
	}
	return TodayResponse{
		CheckedIn:    record.HasCheckedIn(),
		CheckedOut:   record.HasCheckedOut(),
		CheckInTime:  formatTime(record.CheckIn, loc),
		CheckOutTime: formatTime(record.CheckOut, loc),
		Status:       record.Status,
		HoursWorked:  record.HoursWorked,
	}
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}

// ExportColumns is the header row of an attendance export.
var ExportColumns = []string{
	"Date", "Employee ID", "Name", "Department",
	"Check In", "Check Out", "Status", "Total Hours",
}

type ExportRow struct {
	Date         string
	EmployeeCode string
	Name         string
	Department   string
	CheckIn      string
	CheckOut     string
	Status       Status
	TotalHours   string
}

// Values returns the row in ExportColumns order.
func (r ExportRow) Values() []string {
	return []string{
		r.Date, r.EmployeeCode, r.Name, r.Department,
		r.CheckIn, r.CheckOut, string(r.Status), r.TotalHours,
	}
}

// ========================================
// FILTERS
// ========================================

// MonthFilter selects a calendar month. Both fields zero means "not set".
type MonthFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *MonthFilter) IsSet() bool {
	return f.Month != 0 || f.Year != 0
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 && f.Year == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required when month is provided",
		})
	}
	if f.Year != 0 && f.Month == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required when year is provided",
		})
	}
	if f.Year < 0 || f.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	EmployeeCode string `json:"employee_id,omitempty"`
	Date         string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate    string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status       string `json:"status,omitempty"`
	Department   string `json:"department,omitempty"`
}

var validStatuses = []string{
	string(StatusPresent), string(StatusLate), string(StatusHalfDay), string(StatusAbsent),
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !validator.IsInSlice(f.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	errs = append(errs, validateDateRange(f.Date, f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportFilter struct {
	EmployeeCode string `json:"employee_id,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Format       string `json:"format,omitempty"` // csv, xlsx
}

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

func (f *ExportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Format == "" {
		f.Format = FormatCSV
	}
	f.Format = strings.ToLower(f.Format)
	if !validator.IsInSlice(f.Format, []string{FormatCSV, FormatXLSX}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx",
		})
	}

	errs = append(errs, validateDateRange("", f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateDateRange(date, startDate, endDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if date != "" {
		if _, valid := validator.IsValidDate(date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	start, startValid := validator.IsValidDate(startDate)
	if startDate != "" && !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(endDate)
	if endDate != "" && !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs
}
