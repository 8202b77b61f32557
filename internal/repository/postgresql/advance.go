package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/advance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

const advanceColumns = `id, worker_id, amount, date, note, created_at`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	err := row.Scan(&a.ID, &a.WorkerID, &a.Amount, &a.Date, &a.Note, &a.CreatedAt)
	return a, err
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID("advance")
	if err != nil {
		return advance.Advance{}, err
	}

	query := `
		INSERT INTO advances (id, worker_id, amount, date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING ` + advanceColumns

	result, err := scanAdvance(q.QueryRow(ctx, query, id, a.WorkerID, a.Amount, a.Date, a.Note))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return advance.Advance{}, worker.ErrWorkerNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}
	return result, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanAdvance(q.QueryRow(ctx, `SELECT `+advanceColumns+` FROM advances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}
	return result, nil
}

// List implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) List(ctx context.Context, filter advance.ListFilter) ([]advance.Listing, int64, decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.WorkerID != nil {
		whereClause += fmt.Sprintf(" AND a.worker_id = $%d", argIndex)
		args = append(args, *filter.WorkerID)
		argIndex++
	}
	if filter.From != nil {
		whereClause += fmt.Sprintf(" AND a.date >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		whereClause += fmt.Sprintf(" AND a.date < $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	var total int64
	var totalAmount decimal.Decimal
	summaryQuery := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(a.amount), 0) FROM advances a %s`, whereClause)
	if err := q.QueryRow(ctx, summaryQuery, args...).Scan(&total, &totalAmount); err != nil {
		return nil, 0, decimal.Zero, fmt.Errorf("failed to count advances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.worker_id, a.amount, a.date, a.note, a.created_at,
			   COALESCE(NULLIF(w.full_name, ''), w.username) AS worker_name
		FROM advances a
		JOIN workers w ON a.worker_id = w.id
		%s
		ORDER BY a.date DESC, a.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, decimal.Zero, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	listings := []advance.Listing{}
	for rows.Next() {
		var l advance.Listing
		err := rows.Scan(&l.ID, &l.WorkerID, &l.Amount, &l.Date, &l.Note, &l.CreatedAt, &l.WorkerName)
		if err != nil {
			return nil, 0, decimal.Zero, fmt.Errorf("failed to scan advance: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, total, totalAmount, rows.Err()
}

// Delete implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM advances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}
	return nil
}
