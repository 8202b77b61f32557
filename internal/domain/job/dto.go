package job

import (
	"io"
	"strings"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CREATE ==========

type CreateJobRequest struct {
	ClientName string `json:"client_name"`
	Phone      string `json:"phone"`
	CarPlate   string `json:"car_plate"`
	CarType    string `json:"car_type"`
	ServiceID  string `json:"service_id"`
	WorkerID   string `json:"worker_id"`
}

func (r *CreateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ServiceID) {
		errs = append(errs, validator.ValidationError{Field: "service_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.ServiceID) {
		errs = append(errs, validator.ValidationError{Field: "service_id", Message: "must be a valid UUID"})
	}
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validateCustomer(r.ClientName, r.Phone, r.CarPlate, r.CarType)...)

	return errs.Err()
}

// CreateBookingRequest is submitted by customers through the public site.
type CreateBookingRequest struct {
	ClientName  string  `json:"client_name"`
	Phone       string  `json:"phone"`
	CarPlate    string  `json:"car_plate"`
	CarType     string  `json:"car_type"`
	ServiceID   *string `json:"service_id,omitempty"`
	Description *string `json:"description,omitempty"`

	VoiceNote            io.Reader `json:"-"`
	VoiceNoteFilename    string    `json:"-"`
	VoiceNoteContentType string    `json:"-"`
	VoiceNoteSize        int64     `json:"-"`
	MaxVoiceNoteSize     int64     `json:"-"`
}

// HasVoiceNote reports whether an audio attachment came with the booking.
func (r *CreateBookingRequest) HasVoiceNote() bool {
	return r.VoiceNote != nil
}

// HasDescription reports whether the customer typed a free-text request.
func (r *CreateBookingRequest) HasDescription() bool {
	return r.Description != nil && !validator.IsEmpty(*r.Description)
}

func (r *CreateBookingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientName) {
		errs = append(errs, validator.ValidationError{Field: "client_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "is required"})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be a valid phone number"})
	}
	if r.ServiceID != nil && !validator.IsValidUUID(*r.ServiceID) {
		errs = append(errs, validator.ValidationError{Field: "service_id", Message: "must be a valid UUID"})
	}
	if r.Description != nil && !validator.MaxLen(*r.Description, 2000) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "must be at most 2000 characters"})
	}
	if r.HasVoiceNote() {
		if r.MaxVoiceNoteSize > 0 && r.VoiceNoteSize > r.MaxVoiceNoteSize {
			errs = append(errs, validator.ValidationError{Field: "voice_note", Message: "file is too large"})
		}
		if ct := r.VoiceNoteContentType; ct != "" && !strings.HasPrefix(ct, "audio/") && !strings.HasPrefix(ct, "video/webm") {
			errs = append(errs, validator.ValidationError{Field: "voice_note", Message: "must be an audio file"})
		}
	}
	errs = append(errs, validateCustomer(r.ClientName, r.Phone, r.CarPlate, r.CarType)...)

	return errs.Err()
}

func validateCustomer(name, phone, plate, carType string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.MaxLen(name, 100) {
		errs = append(errs, validator.ValidationError{Field: "client_name", Message: "must be at most 100 characters"})
	}
	if !validator.MaxLen(phone, 20) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be at most 20 characters"})
	}
	if !validator.MaxLen(plate, 20) {
		errs = append(errs, validator.ValidationError{Field: "car_plate", Message: "must be at most 20 characters"})
	}
	if !validator.MaxLen(carType, 50) {
		errs = append(errs, validator.ValidationError{Field: "car_type", Message: "must be at most 50 characters"})
	}
	return errs
}

// ========== UPDATE ==========

// UpdateJobRequest is a partial update. The frozen and derived money fields
// are accepted on the wire only so that attempts to set them can be refused.
type UpdateJobRequest struct {
	ID           string  `json:"-"`
	ClientName   *string `json:"client_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	CarPlate     *string `json:"car_plate,omitempty"`
	CarType      *string `json:"car_type,omitempty"`
	ServiceID    *string `json:"service_id,omitempty"`
	ClearService bool    `json:"clear_service,omitempty"`
	WorkerID     *string `json:"worker_id,omitempty"`
	ClearWorker  bool    `json:"clear_worker,omitempty"`
	Status       *Status `json:"status,omitempty"`

	FinalPrice      *decimal.Decimal `json:"final_price,omitempty"`
	FinalCommission *decimal.Decimal `json:"final_commission,omitempty"`
	ModeTag         *string          `json:"mode_tag,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FinalPrice != nil {
		errs = append(errs, validator.ValidationError{Field: "final_price", Message: "is read-only"})
	}
	if r.FinalCommission != nil {
		errs = append(errs, validator.ValidationError{Field: "final_commission", Message: "is read-only"})
	}
	if r.ModeTag != nil {
		errs = append(errs, validator.ValidationError{Field: "mode_tag", Message: "is read-only"})
	}
	if r.Status != nil && !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, processing, completed, canceled"})
	}
	if r.ServiceID != nil && r.ClearService {
		errs = append(errs, validator.ValidationError{Field: "service_id", Message: "cannot be combined with clear_service"})
	} else if r.ServiceID != nil && !validator.IsValidUUID(*r.ServiceID) {
		errs = append(errs, validator.ValidationError{Field: "service_id", Message: "must be a valid UUID"})
	}
	if r.WorkerID != nil && r.ClearWorker {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "cannot be combined with clear_worker"})
	} else if r.WorkerID != nil && !validator.IsValidUUID(*r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validateCustomer(deref(r.ClientName), deref(r.Phone), deref(r.CarPlate), deref(r.CarType))...)

	return errs.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ========== LIST ==========

// JobFilter is the query-string form of a job list request.
type JobFilter struct {
	ModeTag   string `json:"mode_tag,omitempty"`
	Source    string `json:"source,omitempty"`
	Status    string `json:"status,omitempty"`
	WorkerID  string `json:"worker_id,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
	Search    string `json:"search,omitempty"`
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	Page      int    `json:"page,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func (f *JobFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.ModeTag != "" && f.ModeTag != "all" && !settings.Mode(f.ModeTag).Valid() {
		errs = append(errs, validator.ValidationError{Field: "mode_tag", Message: "must be commission, salary or all"})
	}
	if f.Source != "" && !Source(f.Source).Valid() {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "must be website or manual"})
	}
	if f.Status != "" && !Status(f.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, processing, completed, canceled"})
	}
	if f.WorkerID != "" && !validator.IsValidUUID(f.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	if f.ServiceID != "" && !validator.IsValidUUID(f.ServiceID) {
		errs = append(errs, validator.ValidationError{Field: "service_id", Message: "must be a valid UUID"})
	}
	if f.DateFrom != "" {
		if _, ok := validator.IsValidDate(f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.DateTo != "" {
		if _, ok := validator.IsValidDate(f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be positive"})
	}
	if f.Limit < 0 || f.Limit > MaxPageLimit {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 100"})
	}

	return errs.Err()
}

// Resolve turns the query form into a repository filter. currentMode is
// used when no mode_tag was requested; "all" disables mode filtering.
func (f JobFilter) Resolve(currentMode settings.Mode, loc *time.Location) ListFilter {
	out := ListFilter{Search: strings.TrimSpace(f.Search)}

	switch f.ModeTag {
	case "":
		m := currentMode
		out.ModeTag = &m
	case "all":
	default:
		m := settings.Mode(f.ModeTag)
		out.ModeTag = &m
	}
	if f.Source != "" {
		s := Source(f.Source)
		out.Source = &s
	}
	if f.Status != "" {
		s := Status(f.Status)
		out.Status = &s
	}
	if f.WorkerID != "" {
		id := f.WorkerID
		out.WorkerID = &id
	}
	if f.ServiceID != "" {
		id := f.ServiceID
		out.ServiceID = &id
	}
	if f.DateFrom != "" {
		if d, err := time.ParseInLocation("2006-01-02", f.DateFrom, loc); err == nil {
			out.From = &d
		}
	}
	if f.DateTo != "" {
		if d, err := time.ParseInLocation("2006-01-02", f.DateTo, loc); err == nil {
			end := d.AddDate(0, 0, 1)
			out.To = &end
		}
	}

	page, limit := f.Pagination()
	out.Limit = limit
	out.Offset = (page - 1) * limit
	return out
}

// Pagination returns the effective page and limit.
func (f JobFilter) Pagination() (page, limit int) {
	page, limit = f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// ========== RESPONSES ==========

type JobResponse struct {
	ID              string          `json:"id"`
	ClientName      string          `json:"client_name"`
	Phone           string          `json:"phone"`
	CarPlate        string          `json:"car_plate"`
	CarType         string          `json:"car_type"`
	Source          Source          `json:"source"`
	ServiceID       *string         `json:"service_id"`
	ServiceName     *string         `json:"service_name,omitempty"`
	WorkerID        *string         `json:"worker_id"`
	WorkerName      *string         `json:"worker_name,omitempty"`
	Status          Status          `json:"status"`
	Description     *string         `json:"description,omitempty"`
	VoiceNoteURL    *string         `json:"voice_note_url,omitempty"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	FinalCommission decimal.Decimal `json:"final_commission"`
	ModeTag         settings.Mode   `json:"mode_tag"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	ModeTag    string        `json:"mode_tag"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalItems int64         `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}
