package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

type JobHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &jobHandlerImpl{jobService: jobService}
}

// jobFilterFromQuery reads the list filters. mode_tag defaults to the
// current mode in the service; "all" lists both.
func jobFilterFromQuery(r *http.Request) job.JobFilter {
	q := r.URL.Query()
	return job.JobFilter{
		ModeTag:   q.Get("mode_tag"),
		Source:    q.Get("source"),
		Status:    q.Get("status"),
		WorkerID:  q.Get("worker_id"),
		ServiceID: q.Get("service_id"),
		Search:    q.Get("search"),
		DateFrom:  q.Get("date_from"),
		DateTo:    q.Get("date_to"),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", job.DefaultPageLimit),
	}
}

func writeJobList(w http.ResponseWriter, result job.JobListResponse) {
	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

func (h *jobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobService.List(r.Context(), jobFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeJobList(w, result)
}

// Get returns the job and marks its notifications as read.
func (h *jobHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Create records a front-desk job.
func (h *jobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req job.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create job decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.jobService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Job created successfully", result)
}

func (h *jobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req job.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update job decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.jobService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Job updated successfully", result)
}

func (h *jobHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.jobService.Complete(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Job completed", result)
}

func (h *jobHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.jobService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Job deleted successfully", nil)
}
