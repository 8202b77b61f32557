package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/dashboard"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// JobTotals implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) JobTotals(ctx context.Context, mode settings.Mode, from, to time.Time) (dashboard.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(final_price), 0),
			COALESCE(SUM(final_commission), 0),
			COUNT(*) FILTER (WHERE status = 'processing')
		FROM jobs
		WHERE mode_tag = $1
		  AND status <> 'canceled'
		  AND created_at >= $2 AND created_at < $3
	`

	var t dashboard.Totals
	if err := q.QueryRow(ctx, query, mode, from, to).Scan(&t.Revenue, &t.Commission, &t.Processing); err != nil {
		return dashboard.Totals{}, fmt.Errorf("failed to get job totals: %w", err)
	}
	return t, nil
}

// DailyTotals implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) DailyTotals(ctx context.Context, mode settings.Mode, from, to time.Time, loc *time.Location) ([]dashboard.DayTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			to_char(created_at AT TIME ZONE $4, 'YYYY-MM-DD') AS day,
			COALESCE(SUM(final_price), 0),
			COALESCE(SUM(final_commission), 0)
		FROM jobs
		WHERE mode_tag = $1
		  AND status <> 'canceled'
		  AND created_at >= $2 AND created_at < $3
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := q.Query(ctx, query, mode, from, to, loc.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}
	defer rows.Close()

	days := []dashboard.DayTotals{}
	for rows.Next() {
		var day string
		var d dashboard.DayTotals
		if err := rows.Scan(&day, &d.Revenue, &d.Commission); err != nil {
			return nil, fmt.Errorf("failed to scan daily totals: %w", err)
		}
		d.Day, err = time.ParseInLocation(time.DateOnly, day, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse day %q: %w", day, err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// RecentJobs implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) RecentJobs(ctx context.Context, mode settings.Mode, from, to time.Time, limit int) ([]dashboard.RecentJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.client_name, j.car_plate, s.name,
			   NULLIF(COALESCE(NULLIF(w.full_name, ''), w.username), ''),
			   j.status, j.final_price, j.created_at
		FROM jobs j
		LEFT JOIN services s ON j.service_id = s.id
		LEFT JOIN workers w ON j.worker_id = w.id
		WHERE j.mode_tag = $1
		  AND j.status <> 'canceled'
		  AND j.created_at >= $2 AND j.created_at < $3
		ORDER BY j.created_at DESC, j.id DESC
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, mode, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent jobs: %w", err)
	}
	defer rows.Close()

	jobs := []dashboard.RecentJob{}
	for rows.Next() {
		var j dashboard.RecentJob
		err := rows.Scan(&j.ID, &j.ClientName, &j.CarPlate, &j.ServiceName, &j.WorkerName, &j.Status, &j.FinalPrice, &j.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent job: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// Roster implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) Roster(ctx context.Context, date time.Time) ([]dashboard.RosterRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.username, w.full_name,
			   COALESCE(a.is_present, FALSE),
			   p.daily_salary
		FROM workers w
		LEFT JOIN attendances a ON a.worker_id = w.id AND a.date = $1::date
		LEFT JOIN worker_profiles p ON p.worker_id = w.id
		WHERE w.is_active = TRUE
		ORDER BY w.username ASC
	`

	rows, err := q.Query(ctx, query, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	roster := []dashboard.RosterRow{}
	for rows.Next() {
		var row dashboard.RosterRow
		if err := rows.Scan(&row.WorkerID, &row.Username, &row.FullName, &row.IsPresent, &row.DailySalary); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		roster = append(roster, row)
	}

	return roster, rows.Err()
}
