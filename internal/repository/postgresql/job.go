package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

const jobColumns = `id, client_name, phone, car_plate, car_type, source, service_id, worker_id, status,
	voice_note_path, description, final_price, final_commission, mode_tag, created_at, updated_at`

func jobScanTargets(j *job.Job) []any {
	return []any{
		&j.ID,
		&j.ClientName,
		&j.Phone,
		&j.CarPlate,
		&j.CarType,
		&j.Source,
		&j.ServiceID,
		&j.WorkerID,
		&j.Status,
		&j.VoiceNotePath,
		&j.Description,
		&j.FinalPrice,
		&j.FinalCommission,
		&j.ModeTag,
		&j.CreatedAt,
		&j.UpdatedAt,
	}
}

// Create implements job.JobRepository. created_at comes from the caller so
// the job lands on the business day it was entered.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID("job")
	if err != nil {
		return job.Job{}, err
	}

	query := `
		INSERT INTO jobs (
			id, client_name, phone, car_plate, car_type, source, service_id, worker_id, status,
			voice_note_path, description, final_price, final_commission, mode_tag, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $15
		)
		RETURNING ` + jobColumns

	var result job.Job
	err = q.QueryRow(ctx, query,
		id, j.ClientName, j.Phone, j.CarPlate, j.CarType, j.Source, j.ServiceID, j.WorkerID, j.Status,
		j.VoiceNotePath, j.Description, j.FinalPrice, j.FinalCommission, j.ModeTag, j.CreatedAt,
	).Scan(jobScanTargets(&result)...)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}
	return result, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	if inTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	var result job.Job
	if err := q.QueryRow(ctx, query, id).Scan(jobScanTargets(&result)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	return result, nil
}

// Update implements job.JobRepository.
func (r *jobRepositoryImpl) Update(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE jobs
		SET client_name = $2, phone = $3, car_plate = $4, car_type = $5,
			service_id = $6, worker_id = $7, status = $8,
			voice_note_path = $9, description = $10, final_commission = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + jobColumns

	var result job.Job
	err := q.QueryRow(ctx, query,
		j.ID, j.ClientName, j.Phone, j.CarPlate, j.CarType,
		j.ServiceID, j.WorkerID, j.Status,
		j.VoiceNotePath, j.Description, j.FinalCommission,
	).Scan(jobScanTargets(&result)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to update job: %w", err)
	}
	return result, nil
}

// Delete implements job.JobRepository.
func (r *jobRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// List implements job.JobRepository.
func (r *jobRepositoryImpl) List(ctx context.Context, filter job.ListFilter) ([]job.Listing, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.ModeTag != nil {
		whereClause += fmt.Sprintf(" AND j.mode_tag = $%d", argIndex)
		args = append(args, *filter.ModeTag)
		argIndex++
	}
	if filter.Source != nil {
		whereClause += fmt.Sprintf(" AND j.source = $%d", argIndex)
		args = append(args, *filter.Source)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND j.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.WorkerID != nil {
		whereClause += fmt.Sprintf(" AND j.worker_id = $%d", argIndex)
		args = append(args, *filter.WorkerID)
		argIndex++
	}
	if filter.ServiceID != nil {
		whereClause += fmt.Sprintf(" AND j.service_id = $%d", argIndex)
		args = append(args, *filter.ServiceID)
		argIndex++
	}
	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (j.client_name ILIKE $%d OR j.phone ILIKE $%d OR j.car_plate ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, containsPattern(filter.Search))
		argIndex++
	}
	if filter.From != nil {
		whereClause += fmt.Sprintf(" AND j.created_at >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		whereClause += fmt.Sprintf(" AND j.created_at < $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT j.id, j.client_name, j.phone, j.car_plate, j.car_type, j.source, j.service_id, j.worker_id, j.status,
			   j.voice_note_path, j.description, j.final_price, j.final_commission, j.mode_tag, j.created_at, j.updated_at,
			   s.name AS service_name,
			   NULLIF(COALESCE(NULLIF(w.full_name, ''), w.username), '') AS worker_name
		FROM jobs j
		LEFT JOIN services s ON j.service_id = s.id
		LEFT JOIN workers w ON j.worker_id = w.id
		%s
		ORDER BY j.created_at DESC, j.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	listings := []job.Listing{}
	for rows.Next() {
		var l job.Listing
		targets := append(jobScanTargets(&l.Job), &l.ServiceName, &l.WorkerName)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, total, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term literally anywhere
// in the column. Backslash is the default LIKE escape character.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
