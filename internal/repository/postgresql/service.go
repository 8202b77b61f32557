package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

type serviceRepositoryImpl struct {
	db *database.DB
}

func NewServiceRepository(db *database.DB) catalog.ServiceRepository {
	return &serviceRepositoryImpl{db: db}
}

const serviceColumns = `id, name, price, commission_amount, icon, created_at, updated_at`

func scanService(row pgx.Row) (catalog.Service, error) {
	var s catalog.Service
	err := row.Scan(&s.ID, &s.Name, &s.Price, &s.CommissionAmount, &s.Icon, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Create(ctx context.Context, s catalog.Service) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID("service")
	if err != nil {
		return catalog.Service{}, err
	}

	query := `
		INSERT INTO services (id, name, price, commission_amount, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + serviceColumns

	result, err := scanService(q.QueryRow(ctx, query, id, s.Name, s.Price, s.CommissionAmount, s.Icon))
	if err != nil {
		return catalog.Service{}, fmt.Errorf("failed to create service: %w", err)
	}
	return result, nil
}

// GetByID implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	result, err := scanService(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, fmt.Errorf("failed to get service: %w", err)
	}
	return result, nil
}

// List implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) List(ctx context.Context) ([]catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY price ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []catalog.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

// Update implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Update(ctx context.Context, s catalog.Service) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE services
		SET name = $2, price = $3, commission_amount = $4, icon = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + serviceColumns

	result, err := scanService(q.QueryRow(ctx, query, s.ID, s.Name, s.Price, s.CommissionAmount, s.Icon))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, fmt.Errorf("failed to update service: %w", err)
	}
	return result, nil
}

// Delete implements catalog.ServiceRepository. Jobs keep their frozen price
// and lose the reference through ON DELETE SET NULL.
func (r *serviceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}
