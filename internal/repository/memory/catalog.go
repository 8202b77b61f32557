package memory

import (
	"context"
	"sort"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
)

type serviceRepository struct{ s *Store }

func NewServiceRepository(s *Store) catalog.ServiceRepository {
	return &serviceRepository{s: s}
}

func (r *serviceRepository) Create(ctx context.Context, svc catalog.Service) (catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	svc.ID = newID()
	svc.CreatedAt, svc.UpdatedAt = now, now
	r.s.services[svc.ID] = svc
	return svc, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}
	return svc, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]catalog.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Price.Cmp(out[j].Price); c != 0 {
			return c < 0
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc catalog.Service) (catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.services[svc.ID]
	if !ok {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}
	svc.CreatedAt = existing.CreatedAt
	svc.UpdatedAt = r.s.now()
	r.s.services[svc.ID] = svc
	return svc, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return catalog.ErrServiceNotFound
	}
	delete(r.s.services, id)
	for jid, j := range r.s.jobs {
		if j.ServiceID != nil && *j.ServiceID == id {
			j.ServiceID = nil
			r.s.jobs[jid] = j
		}
	}
	return nil
}
