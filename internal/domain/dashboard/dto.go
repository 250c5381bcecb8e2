package dashboard

import (
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
)

// ========== EMPLOYEE DASHBOARD ==========

// EmployeeDashboardResponse is the landing view of a single employee
type EmployeeDashboardResponse struct {
	Employee         employee.ProfileResponse        `json:"employee"`
	TodayStatus      attendance.TodayResponse        `json:"today_status"`
	MonthStats       attendance.Summary              `json:"month_stats"`
	RecentAttendance []attendance.AttendanceResponse `json:"recent_attendance"` // last 7 days, newest first
}

// ========== MANAGER DASHBOARD ==========

// TodayStats counts the roster for the current day
type TodayStats struct {
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	AttendanceRate float64 `json:"attendance_rate"` // present / roster * 100
}

// ManagerDashboardResponse is the team overview for managers
type ManagerDashboardResponse struct {
	TotalEmployees  int                         `json:"total_employees"`
	TodayStats      TodayStats                  `json:"today_stats"`
	WeeklyTrend     []attendance.DayTrend       `json:"weekly_trend"` // 7 entries, oldest first
	DepartmentWise  []attendance.DepartmentStat `json:"department_wise"`
	AbsentEmployees []employee.ProfileResponse  `json:"absent_employees"`
}
