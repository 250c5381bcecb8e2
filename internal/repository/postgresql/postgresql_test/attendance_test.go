package postgresql_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
	"github.com/suhana-bhanu/attendance-system/internal/repository/postgresql"
)

func createTestEmployee(t *testing.T, repo employee.EmployeeRepository, code string, department string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{
		Name:         "Employee " + code,
		Email:        fmt.Sprintf("%s@example.com", code),
		PasswordHash: "hash",
		EmployeeCode: code,
		Department:   department,
		Role:         employee.RoleEmployee,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := createTestEmployee(t, repo, "EMP001", "Engineering")

	byEmail, err := repo.GetByEmail(ctx, "EMP001@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byCode, err := repo.GetByEmployeeCode(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", byCode.Department)

	_, err = repo.GetByEmployeeCode(ctx, "NOPE")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = repo.Create(ctx, employee.Employee{
		Name: "Dup", Email: "other@example.com", PasswordHash: "hash",
		EmployeeCode: "EMP001", Department: "Ops", Role: employee.RoleEmployee,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	_, err = repo.Create(ctx, employee.Employee{
		Name: "Dup", Email: "EMP001@example.com", PasswordHash: "hash",
		EmployeeCode: "EMP999", Department: "Ops", Role: employee.RoleEmployee,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestAttendanceRepository_CheckInOnce(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestEmployee(t, empRepo, "EMP001", "Engineering")

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	at := day.Add(9*time.Hour + 20*time.Minute)

	att, err := repo.CheckIn(ctx, emp.ID, day, at, attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, att.Status)
	assert.Equal(t, "2024-03-04", worktime.FormatDate(att.Date))
	require.NotNil(t, att.CheckIn)
	assert.True(t, at.Equal(*att.CheckIn))

	_, err = repo.CheckIn(ctx, emp.ID, day, at.Add(time.Hour), attendance.StatusLate)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestEmployee(t, empRepo, "EMP001", "Engineering")
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CheckIn(ctx, emp.ID, day, day.Add(9*time.Hour+time.Duration(i)*time.Second), attendance.StatusPresent)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)

	records, err := repo.List(ctx, attendance.ListFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_CheckOut(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestEmployee(t, empRepo, "EMP001", "Engineering")

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	in := day.Add(9*time.Hour + 45*time.Minute)
	att, err := repo.CheckIn(ctx, emp.ID, day, in, attendance.StatusLate)
	require.NoError(t, err)

	closed, err := repo.CheckOut(ctx, att.ID, in.Add(2*time.Hour), 2, attendance.StatusHalfDay)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, closed.Status)
	assert.Equal(t, 2.0, closed.HoursWorked)
	require.NotNil(t, closed.CheckOut)

	_, err = repo.CheckOut(ctx, att.ID, in.Add(3*time.Hour), 3, attendance.StatusHalfDay)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	got, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, in.Add(2*time.Hour).Equal(*got.CheckOut))

	missing, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_MarkAbsentThenCheckIn(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	first := createTestEmployee(t, empRepo, "EMP001", "Engineering")
	second := createTestEmployee(t, empRepo, "EMP002", "Sales")
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	_, err := repo.CheckIn(ctx, first.ID, day, day.Add(9*time.Hour), attendance.StatusPresent)
	require.NoError(t, err)

	created, err := repo.MarkAbsent(ctx, []string{first.ID, second.ID}, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created)

	absent, err := repo.GetByEmployeeAndDate(ctx, second.ID, day)
	require.NoError(t, err)
	require.NotNil(t, absent)
	assert.Equal(t, attendance.StatusAbsent, absent.Status)
	assert.Nil(t, absent.CheckIn)

	converted, err := repo.CheckIn(ctx, second.ID, day, day.Add(10*time.Hour), attendance.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, absent.ID, converted.ID)
	assert.Equal(t, attendance.StatusLate, converted.Status)
}

func TestAttendanceRepository_ListFilters(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	eng := createTestEmployee(t, empRepo, "EMP001", "Engineering")
	sales := createTestEmployee(t, empRepo, "EMP002", "Sales")

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		day := start.AddDate(0, 0, i)
		_, err := repo.CheckIn(ctx, eng.ID, day, day.Add(9*time.Hour), attendance.StatusPresent)
		require.NoError(t, err)
		_, err = repo.CheckIn(ctx, sales.ID, day, day.Add(10*time.Hour), attendance.StatusLate)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, attendance.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, "2024-03-05", worktime.FormatDate(all[0].Date))
	require.NotNil(t, all[0].EmployeeCode)
	assert.Equal(t, "EMP001", *all[0].EmployeeCode)

	window, err := repo.List(ctx, attendance.ListFilter{From: start.AddDate(0, 0, 1), To: start.AddDate(0, 0, 3)})
	require.NoError(t, err)
	assert.Len(t, window, 4)

	late, err := repo.List(ctx, attendance.ListFilter{Status: attendance.StatusLate, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, late, 2)
	for _, r := range late {
		assert.Equal(t, sales.ID, r.EmployeeID)
	}

	byDept, err := repo.List(ctx, attendance.ListFilter{Department: "Engineering"})
	require.NoError(t, err)
	assert.Len(t, byDept, 5)
}
