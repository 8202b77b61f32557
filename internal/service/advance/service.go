package advance

import (
	"context"
	"log/slog"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/advance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type AdvanceServiceImpl struct {
	repo       advance.AdvanceRepository
	workerRepo worker.WorkerRepository
	clock      clock.Clock
}

func NewAdvanceService(repo advance.AdvanceRepository, workerRepo worker.WorkerRepository, clk clock.Clock) advance.AdvanceService {
	return &AdvanceServiceImpl{repo: repo, workerRepo: workerRepo, clock: clk}
}

// Create implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Create(ctx context.Context, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	date := s.clock.Now()
	if req.Date != "" {
		date, _ = advance.ParseDate(req.Date, s.clock.Location())
	}

	created, err := s.repo.Create(ctx, advance.Advance{
		WorkerID: w.ID,
		Amount:   req.Amount,
		Date:     date,
		Note:     req.Note,
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	slog.Info("Advance recorded", "advance_id", created.ID, "worker_id", w.ID, "amount", created.Amount)

	resp := toResponse(created)
	resp.WorkerName = w.DisplayName()
	return resp, nil
}

// Get implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Get(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	resp := toResponse(a)
	if w, err := s.workerRepo.GetByID(ctx, a.WorkerID); err == nil {
		resp.WorkerName = w.DisplayName()
	}
	return resp, nil
}

// List implements advance.AdvanceService.
func (s *AdvanceServiceImpl) List(ctx context.Context, filter advance.AdvanceFilter) (advance.AdvanceListResponse, error) {
	if err := filter.Validate(); err != nil {
		return advance.AdvanceListResponse{}, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	lf := advance.ListFilter{Limit: limit, Offset: (page - 1) * limit}
	if filter.WorkerID != "" {
		id := filter.WorkerID
		lf.WorkerID = &id
	}
	loc := s.clock.Location()
	if filter.DateFrom != "" {
		if d, err := time.ParseInLocation(time.DateOnly, filter.DateFrom, loc); err == nil {
			lf.From = &d
		}
	}
	if filter.DateTo != "" {
		if d, err := time.ParseInLocation(time.DateOnly, filter.DateTo, loc); err == nil {
			end := d.AddDate(0, 0, 1)
			lf.To = &end
		}
	}

	listings, total, totalAmount, err := s.repo.List(ctx, lf)
	if err != nil {
		return advance.AdvanceListResponse{}, err
	}

	items := make([]advance.AdvanceResponse, 0, len(listings))
	for _, l := range listings {
		resp := toResponse(l.Advance)
		resp.WorkerName = l.WorkerName
		items = append(items, resp)
	}

	return advance.AdvanceListResponse{
		Advances:    items,
		TotalAmount: totalAmount,
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Delete implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Advance deleted", "advance_id", id)
	return nil
}

func toResponse(a advance.Advance) advance.AdvanceResponse {
	return advance.AdvanceResponse{
		ID:        a.ID,
		WorkerID:  a.WorkerID,
		Amount:    a.Amount,
		Date:      a.Date,
		Note:      a.Note,
		CreatedAt: a.CreatedAt,
	}
}
