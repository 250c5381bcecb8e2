package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

func strPtr(s string) *string { return &s }

func record(employeeID string, date time.Time, status Status, hours float64) Attendance {
	return Attendance{
		EmployeeID:  employeeID,
		Date:        worktime.DateKey(date),
		Status:      status,
		HoursWorked: hours,
	}
}

func member(id, department string) employee.Employee {
	return employee.Employee{ID: id, Department: department, Role: employee.RoleEmployee}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []Attendance{
		record("e1", day, StatusPresent, 8.25),
		record("e1", day.AddDate(0, 0, 1), StatusLate, 7.5),
		record("e1", day.AddDate(0, 0, 2), StatusHalfDay, 3.1),
		record("e1", day.AddDate(0, 0, 3), StatusAbsent, 0),
		record("e1", day.AddDate(0, 0, 4), StatusPresent, 0), // not checked out yet
	}

	s := Summarize(records)

	assert.Equal(t, 2, s.Present)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, 1, s.HalfDay)
	assert.Equal(t, 1, s.Absent)
	assert.Equal(t, 5, s.TotalDays)
	assert.Equal(t, "18.85", s.TotalHours)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, Summary{TotalHours: "0.00"}, s)
}

func TestSummarize_AvoidsFloatDrift(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var records []Attendance
	for i := 0; i < 10; i++ {
		records = append(records, record("e1", day.AddDate(0, 0, i), StatusHalfDay, 0.1))
	}

	assert.Equal(t, "1.00", Summarize(records).TotalHours)
}

func TestTeamSummary(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := record("e1", day, StatusPresent, 8)
	a.EmployeeName, a.EmployeeCode, a.Department = strPtr("Ana"), strPtr("EMP001"), strPtr("Engineering")
	b := record("e2", day, StatusLate, 6)
	b.EmployeeName, b.EmployeeCode, b.Department = strPtr("Budi"), strPtr("EMP002"), strPtr("Sales")
	c := record("e1", day.AddDate(0, 0, 1), StatusHalfDay, 2.5)

	team := TeamSummary([]Attendance{a, b, c})

	require.Len(t, team, 2)
	assert.Equal(t, "e1", team[0].ID)
	assert.Equal(t, "EMP001", team[0].EmployeeCode)
	assert.Equal(t, "Ana", team[0].Name)
	assert.Equal(t, 1, team[0].Present)
	assert.Equal(t, 1, team[0].HalfDay)
	assert.Equal(t, "10.50", team[0].TotalHours)
	assert.Equal(t, 2, team[0].TotalDays)
	assert.Equal(t, "Sales", team[1].Department)
	assert.Equal(t, 1, team[1].Late)
}

func TestDailyTrend_AlwaysReturnsWindow(t *testing.T) {
	end := time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC)
	days := worktime.WindowDays(end, 7)

	cases := []struct {
		name    string
		records []Attendance
	}{
		{"no records", nil},
		{"single day", []Attendance{record("e1", end, StatusPresent, 8)}},
		{"sparse", []Attendance{
			record("e1", days[0], StatusLate, 8),
			record("e2", days[3], StatusAbsent, 0),
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			trend, err := DailyTrend(c.records, days)
			require.NoError(t, err)
			require.Len(t, trend, 7)
			for i, entry := range trend {
				assert.Equal(t, worktime.FormatDate(days[i]), entry.Date)
			}
		})
	}
}

func TestDailyTrend_Counts(t *testing.T) {
	end := time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC)
	days := worktime.WindowDays(end, 3)
	records := []Attendance{
		record("e1", days[0], StatusPresent, 8),
		record("e2", days[0], StatusLate, 7),
		record("e3", days[0], StatusAbsent, 0),
		record("e4", days[0], StatusHalfDay, 2),
		record("e1", days[2], StatusLate, 8),
		record("e1", days[2], StatusPresent, 8), // duplicate subject for the day
	}

	trend, err := DailyTrend(records, days)

	require.NoError(t, err)
	assert.Equal(t, DayTrend{Date: "2024-03-05", Present: 2, Absent: 1}, trend[0])
	assert.Equal(t, DayTrend{Date: "2024-03-06"}, trend[1])
	assert.Equal(t, DayTrend{Date: "2024-03-07", Present: 1}, trend[2])
}

func TestDailyTrend_RecordOutsideWindow(t *testing.T) {
	end := time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC)
	days := worktime.WindowDays(end, 7)

	_, err := DailyTrend([]Attendance{record("e1", end.AddDate(0, 0, 1), StatusPresent, 8)}, days)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDepartmentSnapshot(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	roster := []employee.Employee{
		member("e1", "Engineering"),
		member("e2", "Engineering"),
		member("e3", "Engineering"),
		member("e4", "Sales"),
		member("e5", "Finance"),
	}
	records := []Attendance{
		record("e1", day, StatusPresent, 0),
		record("e2", day, StatusHalfDay, 3),
		record("e3", day, StatusAbsent, 0),
		record("e4", day, StatusLate, 0),
		record("x9", day, StatusPresent, 0), // not on the roster
	}

	snapshot := DepartmentSnapshot(roster, records)

	require.Len(t, snapshot, 3)
	byDept := make(map[string]DepartmentStat)
	for _, s := range snapshot {
		assert.Equal(t, s.Total, s.Present+s.Absent, s.Department)
		byDept[s.Department] = s
	}
	assert.Equal(t, DepartmentStat{Department: "Engineering", Total: 3, Present: 2, Absent: 1}, byDept["Engineering"])
	assert.Equal(t, DepartmentStat{Department: "Sales", Total: 1, Present: 1, Absent: 0}, byDept["Sales"])
	assert.Equal(t, DepartmentStat{Department: "Finance", Total: 1, Present: 0, Absent: 1}, byDept["Finance"])
}

func TestDepartmentSnapshot_NoRecords(t *testing.T) {
	roster := []employee.Employee{member("e1", "Ops"), member("e2", "Ops")}

	snapshot := DepartmentSnapshot(roster, nil)

	require.Len(t, snapshot, 1)
	assert.Equal(t, DepartmentStat{Department: "Ops", Total: 2, Present: 0, Absent: 2}, snapshot[0])
	assert.Empty(t, DepartmentSnapshot(nil, nil))
}

func TestRosterCountsAndAbsentMembers(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	roster := []employee.Employee{
		member("e1", "Ops"),
		member("e2", "Ops"),
		member("e3", "Ops"),
		member("e4", "Ops"),
	}
	records := []Attendance{
		record("e1", day, StatusPresent, 0),
		record("e2", day, StatusLate, 0),
		record("e3", day, StatusAbsent, 0),
	}

	counts := RosterCounts(roster, records)
	absent := AbsentMembers(roster, records)

	assert.Equal(t, DayCounts{Present: 2, Late: 1, Absent: 2}, counts)
	require.Len(t, absent, 2)
	assert.Equal(t, "e3", absent[0].ID)
	assert.Equal(t, "e4", absent[1].ID)
}
