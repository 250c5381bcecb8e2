package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetEmployeeDashboard returns today, the current month and the last week for the caller
	GetEmployeeDashboard(ctx context.Context) (*EmployeeDashboardResponse, error)

	// GetManagerDashboard returns roster-driven stats for today and the last week
	GetManagerDashboard(ctx context.Context) (*ManagerDashboardResponse, error)
}
