package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/jwt"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/sse"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/validator"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

const (
	historyLimit = 100
	listLimit    = 500

	exportTimeLayout = "15:04:05"
	notAvailable     = "N/A"
)

// Publisher fans attendance events out to live subscribers.
type Publisher interface {
	PublishToMany(topics []string, event sse.Event)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	publisher Publisher
	loc       *time.Location
	now       func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	publisher Publisher,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		publisher:            publisher,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) currentTime() time.Time {
	return a.now().In(a.loc)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := a.currentTime()
	status := attendance.ClassifyCheckIn(now)

	record, err := a.AttendanceRepository.CheckIn(ctx, emp.ID, now, now, status)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	resp := a.mapAttendanceToResponse(withEmployee(record, emp))
	a.publish(emp.ID, "checkin", resp)
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.currentTime()

	today, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if today == nil || !today.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if today.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	hours, err := worktime.ElapsedHours(*today.CheckIn, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to compute hours worked: %w", err)
	}
	status := attendance.ClassifyCheckOut(today.Status, hours)

	record, err := a.AttendanceRepository.CheckOut(ctx, today.ID, now, hours, status)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	if emp, err := a.EmployeeRepository.GetByID(ctx, employeeID); err == nil {
		record = withEmployee(record, emp)
	}

	resp := a.mapAttendanceToResponse(record)
	a.publish(employeeID, "checkout", resp)
	return resp, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.currentTime())
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return a.mapTodayResponse(record), nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.MonthFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	listFilter := attendance.ListFilter{EmployeeID: employeeID, Limit: historyLimit}
	if filter.IsSet() {
		from, to, err := worktime.MonthBounds(filter.Month, filter.Year, a.loc)
		if err != nil {
			return nil, err
		}
		listFilter.From, listFilter.To = from, to
	}

	records, err := a.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return a.mapAttendanceList(records), nil
}

// GetMySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMySummary(ctx context.Context, filter attendance.MonthFilter) (attendance.Summary, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Summary{}, err
	}

	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.Summary{}, err
	}

	from, to, err := a.monthRange(filter)
	if err != nil {
		return attendance.Summary{}, err
	}

	records, err := a.AttendanceRepository.List(ctx, attendance.ListFilter{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.Summarize(records), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	listFilter := attendance.ListFilter{
		Status:     attendance.Status(filter.Status),
		Department: filter.Department,
		Limit:      listLimit,
	}

	if filter.EmployeeCode != "" {
		emp, err := a.EmployeeRepository.GetByEmployeeCode(ctx, filter.EmployeeCode)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return []attendance.AttendanceResponse{}, nil
			}
			return nil, fmt.Errorf("failed to get employee by code: %w", err)
		}
		listFilter.EmployeeID = emp.ID
	}

	// A single date takes precedence over a range.
	if filter.Date != "" {
		day, err := worktime.ParseDate(filter.Date, a.loc)
		if err != nil {
			return nil, err
		}
		listFilter.From, listFilter.To = worktime.DayBounds(day)
	} else {
		from, to, err := a.dateRange(filter.StartDate, filter.EndDate)
		if err != nil {
			return nil, err
		}
		listFilter.From, listFilter.To = from, to
	}

	records, err := a.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return a.mapAttendanceList(records), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
// id may be the employee's internal ID or their employee code.
func (a *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, id string, filter attendance.MonthFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var emp employee.Employee
	var err error
	if validator.IsValidUUID(id) {
		emp, err = a.EmployeeRepository.GetByID(ctx, id)
	} else {
		emp, err = a.EmployeeRepository.GetByEmployeeCode(ctx, id)
	}
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	listFilter := attendance.ListFilter{EmployeeID: emp.ID, Limit: listLimit}
	if filter.IsSet() {
		from, to, err := worktime.MonthBounds(filter.Month, filter.Year, a.loc)
		if err != nil {
			return nil, err
		}
		listFilter.From, listFilter.To = from, to
	}

	records, err := a.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return a.mapAttendanceList(records), nil
}

// GetTeamSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTeamSummary(ctx context.Context, filter attendance.MonthFilter) ([]attendance.EmployeeSummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, to, err := a.monthRange(filter)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, attendance.ListFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	summaries := attendance.TeamSummary(records)
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EmployeeCode < summaries[j].EmployeeCode
	})
	return summaries, nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context) ([]attendance.TodayStatusResponse, error) {
	roster, err := a.EmployeeRepository.ListByRole(ctx, employee.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	from, to := worktime.DayBounds(a.currentTime())
	records, err := a.AttendanceRepository.List(ctx, attendance.ListFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}

	byEmployee := attendance.IndexByEmployee(records)
	result := make([]attendance.TodayStatusResponse, 0, len(roster))
	for _, member := range roster {
		var record *attendance.Attendance
		if rec, ok := byEmployee[member.ID]; ok {
			record = &rec
		}
		result = append(result, attendance.TodayStatusResponse{
			Employee:      employee.ToProfile(member),
			TodayResponse: a.mapTodayResponse(record),
		})
	}

	return result, nil
}

// Export implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Export(ctx context.Context, filter attendance.ExportFilter) ([]attendance.ExportRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var listFilter attendance.ListFilter
	if filter.EmployeeCode != "" {
		emp, err := a.EmployeeRepository.GetByEmployeeCode(ctx, filter.EmployeeCode)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return []attendance.ExportRow{}, nil
			}
			return nil, fmt.Errorf("failed to get employee by code: %w", err)
		}
		listFilter.EmployeeID = emp.ID
	}

	from, to, err := a.dateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	listFilter.From, listFilter.To = from, to

	records, err := a.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	rows := make([]attendance.ExportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, attendance.ExportRow{
			Date:         worktime.FormatDate(r.Date),
			EmployeeCode: derefOr(r.EmployeeCode, notAvailable),
			Name:         derefOr(r.EmployeeName, notAvailable),
			Department:   derefOr(r.Department, notAvailable),
			CheckIn:      a.clockTime(r.CheckIn),
			CheckOut:     a.clockTime(r.CheckOut),
			Status:       r.Status,
			TotalHours:   decimal.NewFromFloat(r.HoursWorked).StringFixed(2),
		})
	}

	return rows, nil
}

// monthRange resolves filter to month bounds, defaulting to the current month.
func (a *AttendanceServiceImpl) monthRange(filter attendance.MonthFilter) (time.Time, time.Time, error) {
	if !filter.IsSet() {
		now := a.currentTime()
		return worktime.MonthBounds(int(now.Month()), now.Year(), a.loc)
	}
	return worktime.MonthBounds(filter.Month, filter.Year, a.loc)
}

// dateRange converts inclusive YYYY-MM-DD bounds into a half-open range. Empty
// bounds stay zero.
func (a *AttendanceServiceImpl) dateRange(startDate, endDate string) (time.Time, time.Time, error) {
	var from, to time.Time

	if startDate != "" {
		start, err := worktime.ParseDate(startDate, a.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = start
	}
	if endDate != "" {
		end, err := worktime.ParseDate(endDate, a.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		_, to = worktime.DayBounds(end)
	}

	return from, to, nil
}

func (a *AttendanceServiceImpl) clockTime(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.In(a.loc).Format(exportTimeLayout)
}

func (a *AttendanceServiceImpl) publish(employeeID string, event string, resp attendance.AttendanceResponse) {
	if a.publisher == nil {
		return
	}
	a.publisher.PublishToMany([]string{sse.TopicManagers, employeeID}, sse.Event{
		Event: event,
		Data:  resp,
	})
}

func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.NewAttendanceResponse(att, a.loc)
}

func (a *AttendanceServiceImpl) mapAttendanceList(records []attendance.Attendance) []attendance.AttendanceResponse {
	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, a.mapAttendanceToResponse(r))
	}
	return result
}

func (a *AttendanceServiceImpl) mapTodayResponse(record *attendance.Attendance) attendance.TodayResponse {
	return attendance.NewTodayResponse(record, a.loc)
}

func withEmployee(record attendance.Attendance, emp employee.Employee) attendance.Attendance {
	record.EmployeeName = &emp.Name
	record.EmployeeEmail = &emp.Email
	record.EmployeeCode = &emp.EmployeeCode
	record.Department = &emp.Department
	return record
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
