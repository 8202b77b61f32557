package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
	WorkerReport(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Report covers every active worker for ?month=YYYY-MM (default this month).
func (h *payrollHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Report(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) WorkerReport(w http.ResponseWriter, r *http.Request) {
	workerID, ok := pathID(w, r, "workerID")
	if !ok {
		return
	}

	result, err := h.payrollService.WorkerReport(r.Context(), workerID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.payrollService.ExportReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		slog.Error("Payroll export error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
