package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/suhana-bhanu/attendance-system/internal/handler/http/response"
)

const healthTimeout = 2 * time.Second

// Pinger is implemented by every store driver.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	store  Pinger
	driver string
}

func NewHealthHandler(store Pinger, driver string) HealthHandler {
	return &healthHandlerImpl{store: store, driver: driver}
}

type healthResponse struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
}

// Check handles GET /api/health
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err, "driver", h.driver)
		response.ServiceUnavailable(w, "Store unavailable")
		return
	}

	response.Success(w, healthResponse{Status: "ok", Driver: h.driver})
}
