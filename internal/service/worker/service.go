package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type WorkerServiceImpl struct {
	tx          database.Transactor
	workerRepo  worker.WorkerRepository
	profileRepo worker.ProfileRepository
}

func NewWorkerService(tx database.Transactor, workerRepo worker.WorkerRepository, profileRepo worker.ProfileRepository) worker.WorkerService {
	return &WorkerServiceImpl{tx: tx, workerRepo: workerRepo, profileRepo: profileRepo}
}

// Create implements worker.WorkerService. The account and its pay profile
// are written together.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	salary := worker.DefaultDailySalary
	if req.DailySalary != nil {
		salary = *req.DailySalary
	}

	var created worker.Worker
	var profile worker.Profile
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.workerRepo.Create(txCtx, worker.Worker{
			Username:     req.Username,
			FullName:     req.FullName,
			PasswordHash: string(hash),
			IsAdmin:      req.IsAdmin,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		profile, err = s.profileRepo.Upsert(txCtx, worker.Profile{WorkerID: created.ID, DailySalary: salary})
		return err
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	slog.Info("Worker created", "worker_id", created.ID, "username", created.Username, "is_admin", created.IsAdmin)
	return worker.ToResponse(created, profile), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	profile, err := s.profileRepo.GetOrCreate(ctx, w.ID, worker.DefaultDailySalary)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to load worker profile: %w", err)
	}
	return worker.ToResponse(w, profile), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, activeOnly bool) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		profile, err := s.profileRepo.GetOrCreate(ctx, w.ID, worker.DefaultDailySalary)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile for worker %s: %w", w.ID, err)
		}
		responses = append(responses, worker.ToResponse(w, profile))
	}
	return responses, nil
}

// Update implements worker.WorkerService. Demoting or deactivating the last
// active admin is refused.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	var updated worker.Worker
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		w, err := s.workerRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		wasActiveAdmin := w.IsAdmin && w.IsActive
		if req.FullName != nil {
			w.FullName = *req.FullName
		}
		if req.IsAdmin != nil {
			w.IsAdmin = *req.IsAdmin
		}
		if req.IsActive != nil {
			w.IsActive = *req.IsActive
		}
		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			w.PasswordHash = string(hash)
		}

		if wasActiveAdmin && !(w.IsAdmin && w.IsActive) {
			if err := s.ensureAnotherAdmin(txCtx); err != nil {
				return err
			}
		}

		updated, err = s.workerRepo.Update(txCtx, w)
		return err
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	profile, err := s.profileRepo.GetOrCreate(ctx, updated.ID, worker.DefaultDailySalary)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to load worker profile: %w", err)
	}
	return worker.ToResponse(updated, profile), nil
}

// Delete implements worker.WorkerService.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		w, err := s.workerRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if w.IsAdmin && w.IsActive {
			if err := s.ensureAnotherAdmin(txCtx); err != nil {
				return err
			}
		}
		if err := s.workerRepo.Delete(txCtx, id); err != nil {
			return err
		}
		slog.Info("Worker deleted", "worker_id", id, "username", w.Username)
		return nil
	})
}

// UpdateSalary implements worker.WorkerService.
func (s *WorkerServiceImpl) UpdateSalary(ctx context.Context, req worker.UpdateSalaryRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	profile, err := s.profileRepo.Upsert(ctx, worker.Profile{WorkerID: w.ID, DailySalary: req.DailySalary})
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update daily salary: %w", err)
	}
	return worker.ToResponse(w, profile), nil
}

func (s *WorkerServiceImpl) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := s.workerRepo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return worker.ErrLastAdmin
	}
	return nil
}
