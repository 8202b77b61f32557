package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
)

type jobRepository struct{ s *Store }

func NewJobRepository(s *Store) job.JobRepository {
	return &jobRepository{s: s}
}

func (r *jobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j.ID = newID()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = r.s.now()
	}
	j.UpdatedAt = j.CreatedAt
	r.s.jobs[j.ID] = j
	return j, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

// Update writes only the mutable columns, as the SQL version does.
func (r *jobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.jobs[j.ID]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	existing.ClientName = j.ClientName
	existing.Phone = j.Phone
	existing.CarPlate = j.CarPlate
	existing.CarType = j.CarType
	existing.ServiceID = j.ServiceID
	existing.WorkerID = j.WorkerID
	existing.Status = j.Status
	existing.VoiceNotePath = j.VoiceNotePath
	existing.Description = j.Description
	existing.FinalCommission = j.FinalCommission
	existing.UpdatedAt = r.s.now()
	r.s.jobs[j.ID] = existing
	return existing, nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return job.ErrJobNotFound
	}
	delete(r.s.jobs, id)
	for nid, n := range r.s.notifications {
		if n.JobID != nil && *n.JobID == id {
			n.JobID = nil
			r.s.notifications[nid] = n
		}
	}
	return nil
}

func (r *jobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Listing, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(f.Search)
	matched := []job.Job{}
	for _, j := range r.s.jobs {
		switch {
		case f.ModeTag != nil && j.ModeTag != *f.ModeTag,
			f.Source != nil && j.Source != *f.Source,
			f.Status != nil && j.Status != *f.Status,
			f.WorkerID != nil && (j.WorkerID == nil || *j.WorkerID != *f.WorkerID),
			f.ServiceID != nil && (j.ServiceID == nil || *j.ServiceID != *f.ServiceID),
			f.From != nil && j.CreatedAt.Before(*f.From),
			f.To != nil && !j.CreatedAt.Before(*f.To):
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(j.ClientName), search) &&
			!strings.Contains(strings.ToLower(j.Phone), search) &&
			!strings.Contains(strings.ToLower(j.CarPlate), search) {
			continue
		}
		matched = append(matched, j)
	}
	sort.Slice(matched, func(a, b int) bool {
		if !matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].ID > matched[b].ID
	})

	total := int64(len(matched))
	matched = paginate(matched, f.Limit, f.Offset)

	out := make([]job.Listing, 0, len(matched))
	for _, j := range matched {
		l := job.Listing{Job: j}
		if j.ServiceID != nil {
			if svc, ok := r.s.services[*j.ServiceID]; ok {
				l.ServiceName = strPtr(svc.Name)
			}
		}
		if j.WorkerID != nil {
			if w, ok := r.s.workers[*j.WorkerID]; ok {
				l.WorkerName = strPtr(w.DisplayName())
			}
		}
		out = append(out, l)
	}
	return out, total, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
