package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

type AbsentJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAbsentJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) *AbsentJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AbsentJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AbsentJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     "mark_absent_employees",
		Interval: interval,
		Fn:       j.MarkAbsentEmployees,
	})
}

// MarkAbsentEmployees records an absent day for every roster member with no
// record for yesterday. Members who joined after yesterday are skipped. Safe to
// run repeatedly.
func (j *AbsentJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.now().In(j.loc).AddDate(0, 0, -1)
	_, dayEnd := worktime.DayBounds(yesterday)

	roster, err := j.employeeRepo.ListByRole(ctx, employee.RoleEmployee)
	if err != nil {
		return fmt.Errorf("failed to list roster: %w", err)
	}

	ids := make([]string, 0, len(roster))
	for _, member := range roster {
		if member.CreatedAt.IsZero() || member.CreatedAt.Before(dayEnd) {
			ids = append(ids, member.ID)
		}
	}

	if len(ids) == 0 {
		slog.Info("Cron: No roster members to sweep", "date", worktime.FormatDate(yesterday))
		return nil
	}

	created, err := j.attendanceRepo.MarkAbsent(ctx, ids, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absent: %w", err)
	}

	slog.Info("Cron: Absent sweep completed",
		"date", worktime.FormatDate(yesterday),
		"roster", len(ids),
		"marked_absent", created,
	)
	return nil
}
