package job

import (
	"strings"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Source tells where a job was entered.
type Source string

const (
	SourceWebsite Source = "website"
	SourceManual  Source = "manual"
)

func (s Source) Valid() bool {
	return s == SourceWebsite || s == SourceManual
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Customer field defaults for walk-ins that leave them blank.
const (
	DefaultClientName = "زبون مباشر"
	DefaultPhone      = "-"
	DefaultCarPlate   = "بدون لوحة"
	DefaultCarType    = "غير محدد"
)

// Job is one wash. FinalPrice and ModeTag are frozen when the job is created;
// FinalCommission is derived again on every save.
type Job struct {
	ID              string
	ClientName      string
	Phone           string
	CarPlate        string
	CarType         string
	Source          Source
	ServiceID       *string
	WorkerID        *string
	Status          Status
	VoiceNotePath   *string
	Description     *string
	FinalPrice      decimal.Decimal
	FinalCommission decimal.Decimal
	ModeTag         settings.Mode
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Listing is a job joined with the display names of its references.
type Listing struct {
	Job
	ServiceName *string
	WorkerName  *string
}

// InitialStatus is pending for web bookings and processing for walk-ins.
func InitialStatus(source Source) Status {
	if source == SourceWebsite {
		return StatusPending
	}
	return StatusProcessing
}

// FinalPriceFor is the price frozen onto a new job: the service price, or
// zero without a service.
func FinalPriceFor(svc *catalog.Service) decimal.Decimal {
	if svc == nil {
		return decimal.Zero
	}
	return svc.Price
}

// CommissionFor is the commission a job carries for the given state. Only a
// completed job tagged with commission mode earns the service commission.
func CommissionFor(status Status, modeTag settings.Mode, svc *catalog.Service) decimal.Decimal {
	if status != StatusCompleted || modeTag != settings.ModeCommission || svc == nil {
		return decimal.Zero
	}
	return svc.CommissionAmount
}

// New builds a job frozen against the mode and service current at creation.
func New(source Source, mode settings.Mode, svc *catalog.Service, now time.Time) Job {
	j := Job{
		Source:    source,
		Status:    InitialStatus(source),
		ModeTag:   mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if svc != nil {
		id := svc.ID
		j.ServiceID = &id
	}
	j.FinalPrice = FinalPriceFor(svc)
	j.Recompute(svc)
	return j
}

// Recompute refreshes FinalCommission from the job's own frozen mode tag.
func (j *Job) Recompute(svc *catalog.Service) {
	j.FinalCommission = CommissionFor(j.Status, j.ModeTag, svc)
}

// ApplyCustomerDefaults fills blank customer fields.
func (j *Job) ApplyCustomerDefaults() {
	j.ClientName = orDefault(j.ClientName, DefaultClientName)
	j.Phone = orDefault(j.Phone, DefaultPhone)
	j.CarPlate = orDefault(j.CarPlate, DefaultCarPlate)
	j.CarType = orDefault(j.CarType, DefaultCarType)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
