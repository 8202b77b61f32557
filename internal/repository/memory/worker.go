package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type workerRepository struct{ s *Store }

func NewWorkerRepository(s *Store) worker.WorkerRepository {
	return &workerRepository{s: s}
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.workers {
		if strings.EqualFold(existing.Username, w.Username) {
			return worker.Worker{}, worker.ErrUsernameExists
		}
	}
	now := r.s.now()
	w.ID = newID()
	w.CreatedAt, w.UpdatedAt = now, now
	r.s.workers[w.ID] = w
	return w, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *workerRepository) GetByUsername(ctx context.Context, username string) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, w := range r.s.workers {
		if strings.EqualFold(w.Username, username) {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *workerRepository) List(ctx context.Context, activeOnly bool) ([]worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []worker.Worker{}
	for _, w := range r.s.workers {
		if activeOnly && !w.IsActive {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *workerRepository) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.workers[w.ID]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	existing.FullName = w.FullName
	existing.PasswordHash = w.PasswordHash
	existing.IsAdmin = w.IsAdmin
	existing.IsActive = w.IsActive
	existing.UpdatedAt = r.s.now()
	r.s.workers[w.ID] = existing
	return existing, nil
}

func (r *workerRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workers[id]; !ok {
		return worker.ErrWorkerNotFound
	}
	delete(r.s.workers, id)
	delete(r.s.profiles, id)
	for aid, a := range r.s.attendances {
		if a.WorkerID == id {
			delete(r.s.attendances, aid)
		}
	}
	for aid, a := range r.s.advances {
		if a.WorkerID == id {
			delete(r.s.advances, aid)
		}
	}
	for jid, j := range r.s.jobs {
		if j.WorkerID != nil && *j.WorkerID == id {
			j.WorkerID = nil
			r.s.jobs[jid] = j
		}
	}
	return nil
}

func (r *workerRepository) CountAdmins(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, w := range r.s.workers {
		if w.IsAdmin && w.IsActive {
			n++
		}
	}
	return n, nil
}

type profileRepository struct{ s *Store }

func NewProfileRepository(s *Store) worker.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) GetByWorkerID(ctx context.Context, workerID string) (worker.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[workerID]
	if !ok {
		return worker.Profile{}, worker.ErrProfileNotFound
	}
	return p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p worker.Profile) (worker.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workers[p.WorkerID]; !ok {
		return worker.Profile{}, worker.ErrWorkerNotFound
	}
	p.UpdatedAt = r.s.now()
	r.s.profiles[p.WorkerID] = p
	return p, nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, workerID string, defaultSalary decimal.Decimal) (worker.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p, ok := r.s.profiles[workerID]; ok {
		return p, nil
	}
	if _, ok := r.s.workers[workerID]; !ok {
		return worker.Profile{}, worker.ErrWorkerNotFound
	}
	p := worker.Profile{WorkerID: workerID, DailySalary: defaultSalary, UpdatedAt: r.s.now()}
	r.s.profiles[workerID] = p
	return p, nil
}
