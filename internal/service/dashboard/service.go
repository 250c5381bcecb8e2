package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/dashboard"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/jwt"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays   = 7
	recentDays  = 7
	recentLimit = 7
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		loc:                  loc,
		now:                  time.Now,
	}
}

// GetEmployeeDashboard loads the caller's profile, today's record, the current
// month and the last week in parallel.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (*dashboard.EmployeeDashboardResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	monthStart, monthEnd, err := worktime.MonthBounds(int(now.Month()), now.Year(), s.loc)
	if err != nil {
		return nil, err
	}
	window := worktime.WindowDays(now, recentDays)
	_, windowEnd := worktime.DayBounds(now)

	var (
		profile employee.Employee
		today   *attendance.Attendance
		month   []attendance.Attendance
		recent  []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emp, err := s.EmployeeRepository.GetByID(gCtx, employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return err
			}
			return fmt.Errorf("failed to get employee: %w", err)
		}
		profile = emp
		return nil
	})

	g.Go(func() error {
		rec, err := s.AttendanceRepository.GetByEmployeeAndDate(gCtx, employeeID, now)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		today = rec
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.ListFilter{
			EmployeeID: employeeID,
			From:       monthStart,
			To:         monthEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to list monthly attendance: %w", err)
		}
		month = records
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.ListFilter{
			EmployeeID: employeeID,
			From:       window[0],
			To:         windowEnd,
			Limit:      recentLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list recent attendance: %w", err)
		}
		recent = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	recentResponses := make([]attendance.AttendanceResponse, 0, len(recent))
	for _, r := range recent {
		recentResponses = append(recentResponses, attendance.NewAttendanceResponse(r, s.loc))
	}

	return &dashboard.EmployeeDashboardResponse{
		Employee:         employee.ToProfile(profile),
		TodayStatus:      attendance.NewTodayResponse(today, s.loc),
		MonthStats:       attendance.Summarize(month),
		RecentAttendance: recentResponses,
	}, nil
}

// GetManagerDashboard reads the roster, today's records and the week's records
// in parallel, then measures every figure against the roster.
func (s *DashboardServiceImpl) GetManagerDashboard(ctx context.Context) (*dashboard.ManagerDashboardResponse, error) {
	now := s.now().In(s.loc)
	dayStart, dayEnd := worktime.DayBounds(now)
	days := worktime.WindowDays(now, trendDays)

	var (
		roster      []employee.Employee
		todayRecs   []attendance.Attendance
		weekRecords []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		members, err := s.EmployeeRepository.ListByRole(gCtx, employee.RoleEmployee)
		if err != nil {
			return fmt.Errorf("failed to list roster: %w", err)
		}
		roster = members
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.ListFilter{From: dayStart, To: dayEnd})
		if err != nil {
			return fmt.Errorf("failed to list today's attendance: %w", err)
		}
		todayRecs = records
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.ListFilter{From: days[0], To: dayEnd})
		if err != nil {
			return fmt.Errorf("failed to list weekly attendance: %w", err)
		}
		weekRecords = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Records of employees no longer on the roster do not count.
	onRoster := make(map[string]struct{}, len(roster))
	for _, member := range roster {
		onRoster[member.ID] = struct{}{}
	}
	weekRecords = filterRecords(weekRecords, onRoster)

	trend, err := attendance.DailyTrend(weekRecords, days)
	if err != nil {
		return nil, err
	}

	counts := attendance.RosterCounts(roster, todayRecs)

	departments := attendance.DepartmentSnapshot(roster, todayRecs)
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Department < departments[j].Department
	})

	absentMembers := attendance.AbsentMembers(roster, todayRecs)
	absent := make([]employee.ProfileResponse, 0, len(absentMembers))
	for _, member := range absentMembers {
		absent = append(absent, employee.ToProfile(member))
	}

	return &dashboard.ManagerDashboardResponse{
		TotalEmployees: len(roster),
		TodayStats: dashboard.TodayStats{
			Present:        counts.Present,
			Absent:         counts.Absent,
			Late:           counts.Late,
			AttendanceRate: percentage(counts.Present, len(roster)),
		},
		WeeklyTrend:     trend,
		DepartmentWise:  departments,
		AbsentEmployees: absent,
	}, nil
}

func filterRecords(records []attendance.Attendance, keep map[string]struct{}) []attendance.Attendance {
	result := make([]attendance.Attendance, 0, len(records))
	for _, r := range records {
		if _, ok := keep[r.EmployeeID]; ok {
			result = append(result, r)
		}
	}
	return result
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}
