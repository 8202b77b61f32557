package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/dashboard"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

type dashboardRepository struct{ s *Store }

func NewDashboardRepository(s *Store) dashboard.DashboardRepository {
	return &dashboardRepository{s: s}
}

// countedLocked returns non-canceled jobs of one mode created in [from, to).
func (r *dashboardRepository) countedLocked(mode settings.Mode, from, to time.Time) []job.Job {
	out := []job.Job{}
	for _, j := range r.s.jobs {
		if j.ModeTag != mode || j.Status == job.StatusCanceled {
			continue
		}
		if j.CreatedAt.Before(from) || !j.CreatedAt.Before(to) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func (r *dashboardRepository) JobTotals(ctx context.Context, mode settings.Mode, from, to time.Time) (dashboard.Totals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := dashboard.Totals{Revenue: decimal.Zero, Commission: decimal.Zero}
	for _, j := range r.countedLocked(mode, from, to) {
		t.Revenue = t.Revenue.Add(j.FinalPrice)
		t.Commission = t.Commission.Add(j.FinalCommission)
		if j.Status == job.StatusProcessing {
			t.Processing++
		}
	}
	return t, nil
}

func (r *dashboardRepository) DailyTotals(ctx context.Context, mode settings.Mode, from, to time.Time, loc *time.Location) ([]dashboard.DayTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byDay := map[string]*dashboard.DayTotals{}
	for _, j := range r.countedLocked(mode, from, to) {
		local := j.CreatedAt.In(loc)
		key := local.Format(time.DateOnly)
		d, ok := byDay[key]
		if !ok {
			y, m, dd := local.Date()
			d = &dashboard.DayTotals{Day: time.Date(y, m, dd, 0, 0, 0, 0, loc), Revenue: decimal.Zero, Commission: decimal.Zero}
			byDay[key] = d
		}
		d.Revenue = d.Revenue.Add(j.FinalPrice)
		d.Commission = d.Commission.Add(j.FinalCommission)
	}

	out := make([]dashboard.DayTotals, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *dashboardRepository) RecentJobs(ctx context.Context, mode settings.Mode, from, to time.Time, limit int) ([]dashboard.RecentJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	jobs := r.countedLocked(mode, from, to)
	sort.Slice(jobs, func(a, b int) bool {
		if !jobs[a].CreatedAt.Equal(jobs[b].CreatedAt) {
			return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
		}
		return jobs[a].ID > jobs[b].ID
	})

	out := []dashboard.RecentJob{}
	for _, j := range paginate(jobs, limit, 0) {
		rj := dashboard.RecentJob{
			ID:         j.ID,
			ClientName: j.ClientName,
			CarPlate:   j.CarPlate,
			Status:     j.Status,
			FinalPrice: j.FinalPrice,
			CreatedAt:  j.CreatedAt,
		}
		if j.ServiceID != nil {
			if svc, ok := r.s.services[*j.ServiceID]; ok {
				rj.ServiceName = strPtr(svc.Name)
			}
		}
		if j.WorkerID != nil {
			if w, ok := r.s.workers[*j.WorkerID]; ok {
				rj.WorkerName = strPtr(w.DisplayName())
			}
		}
		out = append(out, rj)
	}
	return out, nil
}

func (r *dashboardRepository) Roster(ctx context.Context, date time.Time) ([]dashboard.RosterRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := calendarDay(date)
	out := []dashboard.RosterRow{}
	for _, w := range r.s.workers {
		if !w.IsActive {
			continue
		}
		row := dashboard.RosterRow{WorkerID: w.ID, Username: w.Username, FullName: w.FullName}
		for _, a := range r.s.attendances {
			if a.WorkerID == w.ID && a.Date.Equal(day) {
				row.IsPresent = a.IsPresent
				break
			}
		}
		if p, ok := r.s.profiles[w.ID]; ok {
			salary := p.DailySalary
			row.DailySalary = &salary
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
