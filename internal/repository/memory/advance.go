package memory

import (
	"context"
	"sort"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/advance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type advanceRepository struct{ s *Store }

func NewAdvanceRepository(s *Store) advance.AdvanceRepository {
	return &advanceRepository{s: s}
}

func (r *advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workers[a.WorkerID]; !ok {
		return advance.Advance{}, worker.ErrWorkerNotFound
	}
	a.ID = newID()
	a.CreatedAt = r.s.now()
	if a.Date.IsZero() {
		a.Date = a.CreatedAt
	}
	r.s.advances[a.ID] = a
	return a, nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.advances[id]
	if !ok {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	return a, nil
}

func (r *advanceRepository) List(ctx context.Context, f advance.ListFilter) ([]advance.Listing, int64, decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := []advance.Advance{}
	sum := decimal.Zero
	for _, a := range r.s.advances {
		if f.WorkerID != nil && a.WorkerID != *f.WorkerID {
			continue
		}
		if f.From != nil && a.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !a.Date.Before(*f.To) {
			continue
		}
		matched = append(matched, a)
		sum = sum.Add(a.Amount)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	out := []advance.Listing{}
	for _, a := range paginate(matched, f.Limit, f.Offset) {
		out = append(out, advance.Listing{Advance: a, WorkerName: r.s.workers[a.WorkerID].DisplayName()})
	}
	return out, total, sum, nil
}

func (r *advanceRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.advances[id]; !ok {
		return advance.ErrAdvanceNotFound
	}
	delete(r.s.advances, id)
	return nil
}
