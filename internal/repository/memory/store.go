// Package memory keeps employees and attendance in process memory. It backs
// DB_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

// Store holds both collections behind one lock so joins see a consistent view.
type Store struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
	records   map[string]attendance.Attendance
	byDay     map[dayKey]string
}

type dayKey struct {
	employeeID string
	date       string
}

func NewStore() *Store {
	return &Store{
		employees: make(map[string]employee.Employee),
		records:   make(map[string]attendance.Attendance),
		byDay:     make(map[dayKey]string),
	}
}

// Ping fails only when ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func keyFor(employeeID string, date time.Time) dayKey {
	return dayKey{employeeID: employeeID, date: worktime.FormatDate(date)}
}

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.employees {
		if strings.EqualFold(e.Email, newEmployee.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		if e.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now

	r.store.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.find(func(e employee.Employee) bool { return e.ID == id })
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return r.find(func(e employee.Employee) bool { return strings.EqualFold(e.Email, email) })
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	return r.find(func(e employee.Employee) bool { return e.EmployeeCode == employeeCode })
}

func (r *employeeRepository) find(match func(employee.Employee) bool) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.employees {
		if match(e) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) ListByRole(ctx context.Context, role employee.Role) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]employee.Employee, 0)
	for _, e := range r.store.employees {
		if e.Role == role {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) CheckIn(ctx context.Context, employeeID string, date time.Time, at time.Time, status attendance.Status) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	key := keyFor(employeeID, date)

	if id, ok := r.store.byDay[key]; ok {
		existing := r.store.records[id]
		if existing.HasCheckedIn() {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		existing.CheckIn = &at
		existing.Status = status
		existing.UpdatedAt = now
		r.store.records[id] = existing
		return existing, nil
	}

	record := attendance.Attendance{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       worktime.DateKey(date),
		CheckIn:    &at,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.store.records[record.ID] = record
	r.store.byDay[key] = record.ID
	return record, nil
}

func (r *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time, hoursWorked float64, status attendance.Status) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.records[id]
	if !ok || !record.HasCheckedIn() || record.HasCheckedOut() {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	record.CheckOut = &at
	record.HoursWorked = hoursWorked
	record.Status = status
	record.UpdatedAt = time.Now().UTC()
	r.store.records[id] = record
	return record, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.byDay[keyFor(employeeID, date)]
	if !ok {
		return nil, nil
	}
	record := r.store.records[id]
	return &record, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var from, to string
	if !filter.From.IsZero() {
		from = worktime.FormatDate(filter.From)
	}
	if !filter.To.IsZero() {
		to = worktime.FormatDate(filter.To)
	}

	result := make([]attendance.Attendance, 0)
	for _, rec := range r.store.records {
		emp, ok := r.store.employees[rec.EmployeeID]
		if !ok {
			continue
		}
		day := worktime.FormatDate(rec.Date)
		switch {
		case filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID:
			continue
		case from != "" && day < from:
			continue
		case to != "" && day >= to:
			continue
		case filter.Status != "" && rec.Status != filter.Status:
			continue
		case filter.Department != "" && emp.Department != filter.Department:
			continue
		}

		name, email, code, dept := emp.Name, emp.Email, emp.EmployeeCode, emp.Department
		rec.EmployeeName = &name
		rec.EmployeeEmail = &email
		rec.EmployeeCode = &code
		rec.Department = &dept
		result = append(result, rec)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return *result[i].EmployeeName < *result[j].EmployeeName
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *attendanceRepository) MarkAbsent(ctx context.Context, employeeIDs []string, date time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	var created int64
	for _, id := range employeeIDs {
		key := keyFor(id, date)
		if _, ok := r.store.byDay[key]; ok {
			continue
		}
		record := attendance.Attendance{
			ID:         uuid.New().String(),
			EmployeeID: id,
			Date:       worktime.DateKey(date),
			Status:     attendance.StatusAbsent,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		r.store.records[record.ID] = record
		r.store.byDay[key] = record.ID
		created++
	}
	return created, nil
}
