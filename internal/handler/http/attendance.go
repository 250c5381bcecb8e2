package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/auth"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/handler/http/response"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/export"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/sse"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/validator"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

const (
	historyLimit = 100
	listLimit    = 500

	keepaliveInterval = 30 * time.Second
)

type AttendanceHandler interface {
	// Employee endpoints
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)

	// Manager endpoints
	All(w http.ResponseWriter, r *http.Request)
	Employee(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	hub               *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		hub:               hub,
	}
}

// queryParam returns the first non-empty value among keys. The API accepts both
// snake_case and camelCase names for the same parameter.
func queryParam(r *http.Request, keys ...string) string {
	q := r.URL.Query()
	for _, key := range keys {
		if v := q.Get(key); v != "" {
			return v
		}
	}
	return ""
}

// parseMonthFilter reads month and year. Non-numeric values are validation errors.
func parseMonthFilter(r *http.Request) (attendance.MonthFilter, error) {
	var (
		filter attendance.MonthFilter
		errs   validator.ValidationErrors
	)

	if raw := queryParam(r, "month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		}
		filter.Month = month
	}
	if raw := queryParam(r, "year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		}
		filter.Year = year
	}

	if len(errs) > 0 {
		return filter, errs
	}
	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	today, err := h.attendanceService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMonthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetMyHistory(r.Context(), filter)
	if err != nil {
		slog.Error("MyHistory error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, records, historyLimit)
}

// MySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMonthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.attendanceService.GetMySummary(r.Context(), filter)
	if err != nil {
		slog.Error("MySummary error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// All implements AttendanceHandler.
func (h *attendanceHandlerImpl) All(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeCode: queryParam(r, "employee_id", "employeeId"),
		Date:         queryParam(r, "date"),
		StartDate:    queryParam(r, "start_date", "startDate"),
		EndDate:      queryParam(r, "end_date", "endDate"),
		Status:       queryParam(r, "status"),
		Department:   queryParam(r, "department"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("ListAttendance error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, records, listLimit)
}

// Employee implements AttendanceHandler.
func (h *attendanceHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	filter, err := parseMonthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetEmployeeAttendance(r.Context(), employeeID, filter)
	if err != nil {
		slog.Error("GetEmployeeAttendance error", "error", err, "employee", employeeID)
		response.HandleError(w, err)
		return
	}

	response.List(w, records, 0)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMonthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summaries, err := h.attendanceService.GetTeamSummary(r.Context(), filter)
	if err != nil {
		slog.Error("GetTeamSummary error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, summaries, 0)
}

// TodayStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.attendanceService.GetTodayStatus(r.Context())
	if err != nil {
		slog.Error("GetTodayStatus error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, statuses, 0)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ExportFilter{
		EmployeeCode: queryParam(r, "employee_id", "employeeId"),
		StartDate:    queryParam(r, "start_date", "startDate"),
		EndDate:      queryParam(r, "end_date", "endDate"),
		Format:       queryParam(r, "format"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.attendanceService.Export(r.Context(), filter)
	if err != nil {
		slog.Error("Export error", "error", err)
		response.HandleError(w, err)
		return
	}

	table := export.Table{
		Header: attendance.ExportColumns,
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, row.Values())
	}

	filename := fmt.Sprintf("attendance-report-%s.%s", worktime.FormatDate(time.Now()), filter.Format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch filter.Format {
	case attendance.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = export.WriteXLSX(w, table)
	default:
		w.Header().Set("Content-Type", "text/csv")
		err = export.WriteCSV(w, table)
	}
	if err != nil {
		// Headers are already sent; the client sees a truncated file.
		slog.Error("Export write error", "error", err, "format", filter.Format)
	}
}

// streamTopic picks the hub topic for the caller: managers see every event,
// employees only their own.
func streamTopic(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	if role, _ := claims["role"].(string); role == string(employee.RoleManager) {
		return sse.TopicManagers
	}
	employeeID, _ := claims["employee_id"].(string)
	return employeeID
}

// Stream pushes check-in and check-out events as server-sent events.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	topic := streamTopic(r)
	if topic == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Stream encode error", "error", err, "event", event.Event)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
