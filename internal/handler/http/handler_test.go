package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suhana-bhanu/attendance-system/internal/config"
	"github.com/suhana-bhanu/attendance-system/internal/domain/auth"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/jwt"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/sse"
	"github.com/suhana-bhanu/attendance-system/internal/repository/memory"
	attendanceService "github.com/suhana-bhanu/attendance-system/internal/service/attendance"
	authService "github.com/suhana-bhanu/attendance-system/internal/service/auth"
	dashboardService "github.com/suhana-bhanu/attendance-system/internal/service/dashboard"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestPassword  = "SecurePass123!"
)

type testServer struct {
	router http.Handler
	hub    *sse.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	records := memory.NewAttendanceRepository(store)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	hub := sse.NewHub()

	cfg := &config.Config{
		App: config.AppConfig{
			Env:         "test",
			FrontendURL: []string{"http://localhost:3000"},
		},
	}

	router := NewRouter(
		cfg,
		jwtSvc,
		NewAuthHandler(authService.NewAuthService(employees, jwtSvc)),
		NewAttendanceHandler(attendanceService.NewAttendanceService(records, employees, hub, time.UTC), hub),
		NewDashboardHandler(dashboardService.NewDashboardService(records, employees, time.UTC)),
		NewHealthHandler(store, config.DriverMemory),
	)

	return &testServer{router: router, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its access token.
func (s *testServer) register(t *testing.T, code, department, role string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/register", "", auth.RegisterRequest{
		Name:            "Employee " + code,
		Email:           code + "@example.com",
		Password:        handlerTestPassword,
		ConfirmPassword: handlerTestPassword,
		EmployeeCode:    code,
		Department:      department,
		Role:            role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data auth.TokenResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"total_items"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env), w.Body.String())
	return env
}
