package http

import (
	"log/slog"
	"net/http"

	"github.com/suhana-bhanu/attendance-system/internal/domain/dashboard"
	"github.com/suhana-bhanu/attendance-system/internal/handler/http/response"
)

type DashboardHandler interface {
	// Employee returns the caller's own dashboard
	Employee(w http.ResponseWriter, r *http.Request)
	// Manager returns roster-wide figures for today and the last week
	Manager(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Employee handles GET /dashboard/employee
func (h *dashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployeeDashboard(r.Context())
	if err != nil {
		slog.Error("GetEmployeeDashboard error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Manager handles GET /dashboard/manager
func (h *dashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetManagerDashboard(r.Context())
	if err != nil {
		slog.Error("GetManagerDashboard error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
