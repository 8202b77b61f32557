package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/storage"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
)

const voiceNoteDir = "voice_notes"

type JobServiceImpl struct {
	tx                  database.Transactor
	jobRepo             job.JobRepository
	serviceRepo         catalog.ServiceRepository
	workerRepo          worker.WorkerRepository
	settingsRepo        settings.SettingsRepository
	notificationService notification.NotificationService
	storage             storage.FileStorage
	clock               clock.Clock
}

func NewJobService(
	tx database.Transactor,
	jobRepo job.JobRepository,
	serviceRepo catalog.ServiceRepository,
	workerRepo worker.WorkerRepository,
	settingsRepo settings.SettingsRepository,
	notificationService notification.NotificationService,
	fileStorage storage.FileStorage,
	clk clock.Clock,
) job.JobService {
	return &JobServiceImpl{
		tx:                  tx,
		jobRepo:             jobRepo,
		serviceRepo:         serviceRepo,
		workerRepo:          workerRepo,
		settingsRepo:        settingsRepo,
		notificationService: notificationService,
		storage:             fileStorage,
		clock:               clk,
	}
}

// CreateManual implements job.JobService.
func (s *JobServiceImpl) CreateManual(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	var created job.Job
	var svc *catalog.Service
	var assignee *worker.Worker
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		mode, err := s.currentMode(txCtx)
		if err != nil {
			return err
		}
		if svc, err = s.requireService(txCtx, req.ServiceID); err != nil {
			return err
		}
		if assignee, err = s.requireWorker(txCtx, req.WorkerID); err != nil {
			return err
		}

		j := job.New(job.SourceManual, mode, svc, s.clock.Now())
		j.ClientName = req.ClientName
		j.Phone = req.Phone
		j.CarPlate = req.CarPlate
		j.CarType = req.CarType
		j.ApplyCustomerDefaults()
		workerID := assignee.ID
		j.WorkerID = &workerID

		created, err = s.jobRepo.Create(txCtx, j)
		return err
	})
	if err != nil {
		return job.JobResponse{}, err
	}

	metrics.JobsCreated.WithLabelValues(string(created.Source), string(created.ModeTag)).Inc()
	slog.Info("Job created", "job_id", created.ID, "source", created.Source, "mode_tag", created.ModeTag)

	return s.respond(ctx, created, svc, assignee), nil
}

// CreateBooking implements job.JobService. The voice note is stored before
// the transaction and removed again if the transaction fails.
func (s *JobServiceImpl) CreateBooking(ctx context.Context, req job.CreateBookingRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	var voiceNotePath *string
	if req.HasVoiceNote() {
		key, err := s.storeVoiceNote(ctx, req)
		if err != nil {
			return job.JobResponse{}, err
		}
		voiceNotePath = &key
	}

	var description *string
	if req.HasDescription() {
		d := strings.TrimSpace(*req.Description)
		description = &d
	}

	var created job.Job
	var svc *catalog.Service
	var notice notification.NotificationResponse
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		mode, err := s.currentMode(txCtx)
		if err != nil {
			return err
		}
		if req.ServiceID != nil {
			if svc, err = s.requireService(txCtx, *req.ServiceID); err != nil {
				return err
			}
		}

		j := job.New(job.SourceWebsite, mode, svc, s.clock.Now())
		j.ClientName = req.ClientName
		j.Phone = req.Phone
		j.CarPlate = req.CarPlate
		j.CarType = req.CarType
		j.ApplyCustomerDefaults()
		j.VoiceNotePath = voiceNotePath
		j.Description = description

		if created, err = s.jobRepo.Create(txCtx, j); err != nil {
			return err
		}

		var serviceName *string
		if svc != nil {
			serviceName = &svc.Name
		}
		notice, err = s.notificationService.NotifyBooking(txCtx, notification.BookingNotice{
			JobID:          created.ID,
			ClientName:     created.ClientName,
			ServiceName:    serviceName,
			HasVoiceNote:   voiceNotePath != nil,
			HasDescription: description != nil,
		})
		return err
	})
	if err != nil {
		if voiceNotePath != nil {
			s.removeVoiceNote(ctx, *voiceNotePath)
		}
		return job.JobResponse{}, err
	}

	s.notificationService.Publish(notice)
	metrics.JobsCreated.WithLabelValues(string(created.Source), string(created.ModeTag)).Inc()
	slog.Info("Booking received", "job_id", created.ID, "notification_type", notice.Type, "mode_tag", created.ModeTag)

	return s.respond(ctx, created, svc, nil), nil
}

// Get implements job.JobService.
func (s *JobServiceImpl) Get(ctx context.Context, id string) (job.JobResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	if err := s.notificationService.MarkReadForJob(ctx, j.ID); err != nil {
		return job.JobResponse{}, fmt.Errorf("failed to mark job notifications read: %w", err)
	}
	return s.toResponse(ctx, j), nil
}

// List implements job.JobService.
func (s *JobServiceImpl) List(ctx context.Context, filter job.JobFilter) (job.JobListResponse, error) {
	if err := filter.Validate(); err != nil {
		return job.JobListResponse{}, err
	}

	mode, err := s.currentMode(ctx)
	if err != nil {
		return job.JobListResponse{}, err
	}

	resolved := filter.Resolve(mode, s.clock.Location())
	listings, total, err := s.jobRepo.List(ctx, resolved)
	if err != nil {
		return job.JobListResponse{}, err
	}

	jobs := make([]job.JobResponse, 0, len(listings))
	for _, l := range listings {
		resp := s.baseResponse(ctx, l.Job)
		resp.ServiceName = l.ServiceName
		resp.WorkerName = l.WorkerName
		jobs = append(jobs, resp)
	}

	modeTag := "all"
	if resolved.ModeTag != nil {
		modeTag = string(*resolved.ModeTag)
	}
	page, limit := filter.Pagination()

	return job.JobListResponse{
		Jobs:       jobs,
		ModeTag:    modeTag,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// ListBookings implements job.JobService.
func (s *JobServiceImpl) ListBookings(ctx context.Context, filter job.JobFilter) (job.JobListResponse, error) {
	filter.Source = string(job.SourceWebsite)
	return s.List(ctx, filter)
}

// Update implements job.JobService. Price and mode tag stay frozen; the
// commission is derived again from the job's own mode tag.
func (s *JobServiceImpl) Update(ctx context.Context, req job.UpdateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	var before, updated job.Job
	var svc *catalog.Service
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		j, err := s.jobRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		before = j

		if req.ClientName != nil {
			j.ClientName = *req.ClientName
		}
		if req.Phone != nil {
			j.Phone = *req.Phone
		}
		if req.CarPlate != nil {
			j.CarPlate = *req.CarPlate
		}
		if req.CarType != nil {
			j.CarType = *req.CarType
		}
		j.ApplyCustomerDefaults()

		switch {
		case req.ClearService:
			j.ServiceID = nil
		case req.ServiceID != nil:
			found, err := s.requireService(txCtx, *req.ServiceID)
			if err != nil {
				return err
			}
			j.ServiceID = &found.ID
		}

		switch {
		case req.ClearWorker:
			j.WorkerID = nil
		case req.WorkerID != nil:
			found, err := s.requireWorker(txCtx, *req.WorkerID)
			if err != nil {
				return err
			}
			j.WorkerID = &found.ID
		}

		if req.Status != nil {
			j.Status = *req.Status
		}

		if svc, err = s.lookupService(txCtx, j.ServiceID); err != nil {
			return err
		}
		j.Recompute(svc)

		updated, err = s.jobRepo.Update(txCtx, j)
		return err
	})
	if err != nil {
		return job.JobResponse{}, err
	}

	if before.Status != job.StatusCompleted && updated.Status == job.StatusCompleted {
		metrics.JobsCompleted.WithLabelValues(string(updated.ModeTag)).Inc()
	}
	if before.Status != updated.Status {
		slog.Info("Job status changed", "job_id", updated.ID, "from", before.Status, "to", updated.Status, "final_commission", updated.FinalCommission)
	}

	return s.toResponse(ctx, updated), nil
}

// Complete implements job.JobService.
func (s *JobServiceImpl) Complete(ctx context.Context, id string) (job.JobResponse, error) {
	completed := job.StatusCompleted
	return s.Update(ctx, job.UpdateJobRequest{ID: id, Status: &completed})
}

// Delete implements job.JobService. The voice note file goes with the job;
// failing to remove it does not fail the delete.
func (s *JobServiceImpl) Delete(ctx context.Context, id string) error {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}
	if j.VoiceNotePath != nil {
		s.removeVoiceNote(ctx, *j.VoiceNotePath)
	}
	slog.Info("Job deleted", "job_id", id, "source", j.Source)
	return nil
}

func (s *JobServiceImpl) currentMode(ctx context.Context) (settings.Mode, error) {
	current, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.DefaultMode, nil
	}
	if err != nil {
		return "", err
	}
	return current.Mode, nil
}

// requireService resolves a referenced service; a dangling id is a
// validation failure on service_id.
func (s *JobServiceImpl) requireService(ctx context.Context, id string) (*catalog.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if errors.Is(err, catalog.ErrServiceNotFound) {
		return nil, validator.Single("service_id", "does not exist")
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *JobServiceImpl) requireWorker(ctx context.Context, id string) (*worker.Worker, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if errors.Is(err, worker.ErrWorkerNotFound) {
		return nil, validator.Single("worker_id", "does not exist")
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// lookupService returns nil when the job has no service or it was deleted.
func (s *JobServiceImpl) lookupService(ctx context.Context, id *string) (*catalog.Service, error) {
	if id == nil {
		return nil, nil
	}
	svc, err := s.serviceRepo.GetByID(ctx, *id)
	if errors.Is(err, catalog.ErrServiceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *JobServiceImpl) storeVoiceNote(ctx context.Context, req job.CreateBookingRequest) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate voice note name: %w", err)
	}

	now := s.clock.Now()
	key := path.Join(voiceNoteDir, now.Format("2006"), now.Format("01"), id.String()+voiceNoteExt(req.VoiceNoteFilename, req.VoiceNoteContentType))

	stored, err := s.storage.Upload(ctx, req.VoiceNote, key, req.VoiceNoteContentType)
	if err != nil {
		return "", fmt.Errorf("failed to store voice note: %w", err)
	}
	return stored, nil
}

func (s *JobServiceImpl) removeVoiceNote(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		slog.Warn("Failed to delete voice note", "path", key, "error", err)
	}
}

func voiceNoteExt(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ".webm"
}

// respond builds a response from references already loaded by the caller.
func (s *JobServiceImpl) respond(ctx context.Context, j job.Job, svc *catalog.Service, w *worker.Worker) job.JobResponse {
	resp := s.baseResponse(ctx, j)
	if svc != nil {
		resp.ServiceName = &svc.Name
	}
	if w != nil {
		name := w.DisplayName()
		resp.WorkerName = &name
	}
	return resp
}

// toResponse loads reference names on its own. Missing references leave
// the names empty.
func (s *JobServiceImpl) toResponse(ctx context.Context, j job.Job) job.JobResponse {
	resp := s.baseResponse(ctx, j)
	if j.ServiceID != nil {
		if svc, err := s.serviceRepo.GetByID(ctx, *j.ServiceID); err == nil {
			resp.ServiceName = &svc.Name
		}
	}
	if j.WorkerID != nil {
		if w, err := s.workerRepo.GetByID(ctx, *j.WorkerID); err == nil {
			name := w.DisplayName()
			resp.WorkerName = &name
		}
	}
	return resp
}

func (s *JobServiceImpl) baseResponse(ctx context.Context, j job.Job) job.JobResponse {
	resp := job.JobResponse{
		ID:              j.ID,
		ClientName:      j.ClientName,
		Phone:           j.Phone,
		CarPlate:        j.CarPlate,
		CarType:         j.CarType,
		Source:          j.Source,
		ServiceID:       j.ServiceID,
		WorkerID:        j.WorkerID,
		Status:          j.Status,
		Description:     j.Description,
		FinalPrice:      j.FinalPrice,
		FinalCommission: j.FinalCommission,
		ModeTag:         j.ModeTag,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
	if j.VoiceNotePath != nil && s.storage != nil {
		if url, err := s.storage.GetURL(ctx, *j.VoiceNotePath, 0); err == nil {
			resp.VoiceNoteURL = &url
		}
	}
	return resp
}
