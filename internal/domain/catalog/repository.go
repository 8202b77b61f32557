package catalog

import "context"

type ServiceRepository interface {
	Create(ctx context.Context, s Service) (Service, error)
	GetByID(ctx context.Context, id string) (Service, error)
	List(ctx context.Context) ([]Service, error)
	Update(ctx context.Context, s Service) (Service, error)
	Delete(ctx context.Context, id string) error
}
