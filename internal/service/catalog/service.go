package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
)

type CatalogServiceImpl struct {
	repo catalog.ServiceRepository
}

func NewCatalogService(repo catalog.ServiceRepository) catalog.CatalogService {
	return &CatalogServiceImpl{repo: repo}
}

// Create implements catalog.CatalogService.
func (s *CatalogServiceImpl) Create(ctx context.Context, req catalog.CreateServiceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	icon := catalog.DefaultIcon
	if req.Icon != nil && strings.TrimSpace(*req.Icon) != "" {
		icon = strings.TrimSpace(*req.Icon)
	}

	created, err := s.repo.Create(ctx, catalog.Service{
		Name:             strings.TrimSpace(req.Name),
		Price:            req.Price,
		CommissionAmount: req.CommissionAmount,
		Icon:             icon,
	})
	if err != nil {
		return catalog.ServiceResponse{}, fmt.Errorf("failed to create service: %w", err)
	}

	return toResponse(created), nil
}

// Get implements catalog.CatalogService.
func (s *CatalogServiceImpl) Get(ctx context.Context, id string) (catalog.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return catalog.ServiceResponse{}, err
	}
	return toResponse(svc), nil
}

// List implements catalog.CatalogService.
func (s *CatalogServiceImpl) List(ctx context.Context) ([]catalog.ServiceResponse, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.ServiceResponse, 0, len(services))
	for _, svc := range services {
		responses = append(responses, toResponse(svc))
	}
	return responses, nil
}

// ListPublic implements catalog.CatalogService. Commission amounts stay
// internal.
func (s *CatalogServiceImpl) ListPublic(ctx context.Context) ([]catalog.PublicServiceResponse, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.PublicServiceResponse, 0, len(services))
	for _, svc := range services {
		responses = append(responses, catalog.PublicServiceResponse{
			ID:    svc.ID,
			Name:  svc.Name,
			Price: svc.Price,
			Icon:  svc.Icon,
		})
	}
	return responses, nil
}

// Update implements catalog.CatalogService. Existing jobs keep their frozen
// price; a new commission amount reaches them only when they are saved
// again.
func (s *CatalogServiceImpl) Update(ctx context.Context, req catalog.UpdateServiceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	svc, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return catalog.ServiceResponse{}, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.CommissionAmount != nil {
		svc.CommissionAmount = *req.CommissionAmount
	}
	if req.Icon != nil {
		svc.Icon = strings.TrimSpace(*req.Icon)
	}

	updated, err := s.repo.Update(ctx, svc)
	if err != nil {
		return catalog.ServiceResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete implements catalog.CatalogService.
func (s *CatalogServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func toResponse(svc catalog.Service) catalog.ServiceResponse {
	return catalog.ServiceResponse{
		ID:               svc.ID,
		Name:             svc.Name,
		Price:            svc.Price,
		CommissionAmount: svc.CommissionAmount,
		Icon:             svc.Icon,
		CreatedAt:        svc.CreatedAt,
		UpdatedAt:        svc.UpdatedAt,
	}
}
