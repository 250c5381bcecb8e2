package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

// Summary counts records per status and sums their worked hours.
type Summary struct {
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
	HalfDay    int    `json:"half_day"`
	TotalHours string `json:"total_hours"`
	TotalDays  int    `json:"total_days"`
}

// EmployeeSummary is a Summary for one employee in a multi-employee list.
type EmployeeSummary struct {
	ID           string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Summary
}

// DayTrend is the attendance count for a single calendar day.
type DayTrend struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// DepartmentStat is a roster-driven snapshot of one department for one day.
type DepartmentStat struct {
	Department string `json:"department"`
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

// DayCounts is a roster-driven count for one day.
type DayCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// Summarize rolls records up into status counts and total hours. Records
// without a checkout contribute zero hours.
func Summarize(records []Attendance) Summary {
	var s Summary
	total := decimal.Zero

	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		case StatusAbsent:
			s.Absent++
		}
		total = total.Add(decimal.NewFromFloat(r.HoursWorked))
	}

	s.TotalHours = total.StringFixed(2)
	s.TotalDays = len(records)
	return s
}

// TeamSummary produces one Summary per employee found in records, in order of
// first appearance.
func TeamSummary(records []Attendance) []EmployeeSummary {
	grouped := make(map[string][]Attendance)
	order := make([]string, 0)
	meta := make(map[string]EmployeeSummary)

	for _, r := range records {
		if _, ok := grouped[r.EmployeeID]; !ok {
			order = append(order, r.EmployeeID)
			meta[r.EmployeeID] = EmployeeSummary{
				ID:           r.EmployeeID,
				EmployeeCode: deref(r.EmployeeCode),
				Name:         deref(r.EmployeeName),
				Department:   deref(r.Department),
			}
		}
		grouped[r.EmployeeID] = append(grouped[r.EmployeeID], r)
	}

	result := make([]EmployeeSummary, 0, len(order))
	for _, id := range order {
		entry := meta[id]
		entry.Summary = Summarize(grouped[id])
		result = append(result, entry)
	}
	return result
}

// DailyTrend returns exactly one entry per day in days. present counts present
// and late records, absent counts absent records. An employee is counted at most
// once per day. A record outside every day yields ErrInvalidInput.
func DailyTrend(records []Attendance, days []time.Time) ([]DayTrend, error) {
	trend := make([]DayTrend, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := worktime.FormatDate(d)
		trend[i] = DayTrend{Date: key}
		index[key] = i
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		key := worktime.FormatDate(r.Date)
		i, ok := index[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, key)
		}

		subject := key + "/" + r.EmployeeID
		if _, dup := seen[subject]; dup {
			continue
		}
		seen[subject] = struct{}{}

		switch r.Status {
		case StatusPresent, StatusLate:
			trend[i].Present++
		case StatusAbsent:
			trend[i].Absent++
		}
	}

	return trend, nil
}

// DepartmentSnapshot groups the roster by department for a single day. Every
// department with roster members appears; members without a record, or with an
// absent record, count as absent.
func DepartmentSnapshot(roster []employee.Employee, records []Attendance) []DepartmentStat {
	byEmployee := IndexByEmployee(records)
	stats := make(map[string]*DepartmentStat)
	order := make([]string, 0)

	for _, member := range roster {
		stat, ok := stats[member.Department]
		if !ok {
			stat = &DepartmentStat{Department: member.Department}
			stats[member.Department] = stat
			order = append(order, member.Department)
		}

		stat.Total++
		if rec, ok := byEmployee[member.ID]; ok && rec.Status != StatusAbsent {
			stat.Present++
		}
	}

	result := make([]DepartmentStat, 0, len(order))
	for _, dept := range order {
		stat := stats[dept]
		stat.Absent = stat.Total - stat.Present
		result = append(result, *stat)
	}
	return result
}

// RosterCounts counts the roster for a single day: present is every member with a
// check-in, late the subset who arrived late, absent the remainder.
func RosterCounts(roster []employee.Employee, records []Attendance) DayCounts {
	byEmployee := IndexByEmployee(records)
	var counts DayCounts

	for _, member := range roster {
		rec, ok := byEmployee[member.ID]
		if !ok || rec.Status == StatusAbsent {
			continue
		}
		counts.Present++
		if rec.Status == StatusLate {
			counts.Late++
		}
	}

	counts.Absent = len(roster) - counts.Present
	return counts
}

// AbsentMembers returns roster members with no record or an absent record.
func AbsentMembers(roster []employee.Employee, records []Attendance) []employee.Employee {
	byEmployee := IndexByEmployee(records)
	absent := make([]employee.Employee, 0)

	for _, member := range roster {
		if rec, ok := byEmployee[member.ID]; ok && rec.Status != StatusAbsent {
			continue
		}
		absent = append(absent, member)
	}
	return absent
}

// IndexByEmployee maps employee ID to its record. Intended for single-day
// record sets; the first record per employee wins.
func IndexByEmployee(records []Attendance) map[string]Attendance {
	index := make(map[string]Attendance, len(records))
	for _, r := range records {
		if _, ok := index[r.EmployeeID]; !ok {
			index[r.EmployeeID] = r
		}
	}
	return index
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
