package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

const (
	voiceNoteField   = "voice_note"
	multipartMemory  = 1 << 20
	formFieldsBudget = 64 << 10
)

type BookingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type bookingHandlerImpl struct {
	jobService       job.JobService
	maxVoiceNoteSize int64
}

func NewBookingHandler(jobService job.JobService, maxVoiceNoteSize int64) BookingHandler {
	return &bookingHandlerImpl{
		jobService:       jobService,
		maxVoiceNoteSize: maxVoiceNoteSize,
	}
}

// Create accepts a booking from the public site, either as JSON or as a
// multipart form carrying an optional voice note.
func (h *bookingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req job.CreateBookingRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxVoiceNoteSize+formFieldsBudget)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.ValidationError(w, map[string]string{voiceNoteField: "file is too large"})
				return
			}
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		req.ClientName = r.FormValue("client_name")
		req.Phone = r.FormValue("phone")
		req.CarPlate = r.FormValue("car_plate")
		req.CarType = r.FormValue("car_type")
		if v := strings.TrimSpace(r.FormValue("service_id")); v != "" {
			req.ServiceID = &v
		}
		if v := r.FormValue("description"); v != "" {
			req.Description = &v
		}

		file, fileHeader, err := r.FormFile(voiceNoteField)
		switch {
		case err == nil:
			defer file.Close()
			req.VoiceNote = file
			req.VoiceNoteFilename = fileHeader.Filename
			req.VoiceNoteContentType = fileHeader.Header.Get("Content-Type")
			req.VoiceNoteSize = fileHeader.Size
		case errors.Is(err, http.ErrMissingFile):
		default:
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, formFieldsBudget)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Create booking decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.MaxVoiceNoteSize = h.maxVoiceNoteSize

	result, err := h.jobService.CreateBooking(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Booking received", result)
}

// List shows website bookings to staff.
func (h *bookingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobService.ListBookings(r.Context(), jobFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeJobList(w, result)
}
