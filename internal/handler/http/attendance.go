package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	DailyRoster(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	WorkerMonth(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// DailyRoster lists every active worker with presence for ?date= (default today).
func (h *attendanceHandlerImpl) DailyRoster(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.DailyRoster(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Toggle flips presence. The body is optional; it may name a date.
func (h *attendanceHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	workerID, ok := pathID(w, r, "workerID")
	if !ok {
		return
	}

	var req attendance.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Toggle attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.WorkerID = workerID

	result, err := h.attendanceService.TogglePresence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance toggled", "worker_id", workerID, "date", result.Date, "present", result.IsPresent)
	response.SuccessWithMessage(w, "Attendance updated", result)
}

func (h *attendanceHandlerImpl) WorkerMonth(w http.ResponseWriter, r *http.Request) {
	workerID, ok := pathID(w, r, "workerID")
	if !ok {
		return
	}

	result, err := h.attendanceService.WorkerMonth(r.Context(), workerID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
