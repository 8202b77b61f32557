package catalog

import "context"

type CatalogService interface {
	Create(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error)
	Get(ctx context.Context, id string) (ServiceResponse, error)
	List(ctx context.Context) ([]ServiceResponse, error)
	ListPublic(ctx context.Context) ([]PublicServiceResponse, error)
	Update(ctx context.Context, req UpdateServiceRequest) (ServiceResponse, error)
	// Delete leaves existing jobs in place with their service reference cleared.
	Delete(ctx context.Context, id string) error
}
