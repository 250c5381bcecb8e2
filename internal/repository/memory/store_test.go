package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
)

func seedEmployee(t *testing.T, repo employee.EmployeeRepository, code, name, department string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{
		Name:         name,
		Email:        code + "@example.com",
		EmployeeCode: code,
		Department:   department,
		Role:         employee.RoleEmployee,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_Duplicates(t *testing.T) {
	repo := NewEmployeeRepository(NewStore())
	seedEmployee(t, repo, "EMP001", "Ana", "Engineering")

	_, err := repo.Create(context.Background(), employee.Employee{Email: "EMP001@EXAMPLE.COM", EmployeeCode: "EMP002"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = repo.Create(context.Background(), employee.Employee{Email: "x@example.com", EmployeeCode: "EMP001"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	_, err = repo.GetByEmployeeCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	store := NewStore()
	emp := seedEmployee(t, NewEmployeeRepository(store), "EMP001", "Ana", "Engineering")
	repo := NewAttendanceRepository(store)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.CheckIn(context.Background(), emp.ID, day, day.Add(9*time.Hour), attendance.StatusPresent); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_AbsentThenCheckIn(t *testing.T) {
	store := NewStore()
	emp := seedEmployee(t, NewEmployeeRepository(store), "EMP001", "Ana", "Engineering")
	repo := NewAttendanceRepository(store)
	ctx := context.Background()
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	created, err := repo.MarkAbsent(ctx, []string{emp.ID}, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created)

	created, err = repo.MarkAbsent(ctx, []string{emp.ID}, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created)

	_, err = repo.CheckOut(ctx, "missing", day, 1, attendance.StatusPresent)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	rec, err := repo.CheckIn(ctx, emp.ID, day, day.Add(10*time.Hour), attendance.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)

	records, err := repo.List(ctx, attendance.ListFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", *records[0].EmployeeName)
}

func TestAttendanceRepository_ListOrderAndWindow(t *testing.T) {
	store := NewStore()
	empRepo := NewEmployeeRepository(store)
	ana := seedEmployee(t, empRepo, "EMP001", "Ana", "Engineering")
	ben := seedEmployee(t, empRepo, "EMP002", "Ben", "Sales")
	repo := NewAttendanceRepository(store)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		day := start.AddDate(0, 0, i)
		_, err := repo.CheckIn(ctx, ben.ID, day, day.Add(9*time.Hour), attendance.StatusPresent)
		require.NoError(t, err)
		_, err = repo.CheckIn(ctx, ana.ID, day, day.Add(9*time.Hour), attendance.StatusPresent)
		require.NoError(t, err)
	}

	records, err := repo.List(ctx, attendance.ListFilter{From: start.AddDate(0, 0, 1), To: start.AddDate(0, 0, 3)})
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, ana.ID, records[0].EmployeeID)
	assert.True(t, records[0].Date.Equal(start.AddDate(0, 0, 2)))

	sales, err := repo.List(ctx, attendance.ListFilter{Department: "Sales", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}
