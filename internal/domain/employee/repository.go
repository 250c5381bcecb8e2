package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)

	// ListByRole returns every employee holding role, ordered by name.
	ListByRole(ctx context.Context, role Role) ([]Employee, error)
}
