package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/dashboard"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays       = 7
	latestJobsLimit = 10
)

type DashboardServiceImpl struct {
	repo         dashboard.DashboardRepository
	settingsRepo settings.SettingsRepository
	profileRepo  worker.ProfileRepository
	clock        clock.Clock
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	settingsRepo settings.SettingsRepository,
	profileRepo worker.ProfileRepository,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		repo:         repo,
		settingsRepo: settingsRepo,
		profileRepo:  profileRepo,
		clock:        clk,
	}
}

// Get implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Get(ctx context.Context) (dashboard.DashboardResponse, error) {
	mode := settings.DefaultMode
	current, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		mode = current.Mode
	case !errors.Is(err, settings.ErrSettingsNotFound):
		return dashboard.DashboardResponse{}, err
	}

	resp := dashboard.DashboardResponse{
		Mode: mode,
		Date: clock.Today(s.clock).Format(time.DateOnly),
	}
	if mode == settings.ModeSalary {
		salary, err := s.Salary(ctx)
		if err != nil {
			return dashboard.DashboardResponse{}, err
		}
		resp.Salary = &salary
		return resp, nil
	}

	commission, err := s.Commission(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	resp.Commission = &commission
	return resp, nil
}

// Commission implements dashboard.DashboardService. Only commission-tagged
// jobs are counted, whatever the current mode.
func (s *DashboardServiceImpl) Commission(ctx context.Context) (dashboard.CommissionDashboard, error) {
	now := s.clock.Now()
	today := clock.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	trendStart := today.AddDate(0, 0, -(trendDays - 1))

	var (
		todayTotals dashboard.Totals
		monthTotals dashboard.Totals
		yearTotals  dashboard.Totals
		daily       []dashboard.DayTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		todayTotals, err = s.repo.JobTotals(gctx, settings.ModeCommission, today, tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		monthTotals, err = s.repo.JobTotals(gctx, settings.ModeCommission, clock.StartOfMonth(now), tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		yearTotals, err = s.repo.JobTotals(gctx, settings.ModeCommission, clock.StartOfYear(now), tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.repo.DailyTotals(gctx, settings.ModeCommission, trendStart, tomorrow, s.clock.Location())
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.CommissionDashboard{}, err
	}

	return dashboard.CommissionDashboard{
		TodayRevenue:    todayTotals.Revenue,
		TodayCommission: todayTotals.Commission,
		TodayProfit:     todayTotals.Profit(),
		ProcessingCount: todayTotals.Processing,
		MonthProfit:     monthTotals.Profit(),
		YearProfit:      yearTotals.Profit(),
		Last7Days:       fillTrend(trendStart, trendDays, daily),
	}, nil
}

// Salary implements dashboard.DashboardService. Profit is revenue less the
// wages of workers present today.
func (s *DashboardServiceImpl) Salary(ctx context.Context) (dashboard.SalaryDashboard, error) {
	today := clock.Today(s.clock)
	tomorrow := today.AddDate(0, 0, 1)

	var (
		roster []dashboard.RosterRow
		totals dashboard.Totals
		latest []dashboard.RecentJob
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.repo.Roster(gctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.JobTotals(gctx, settings.ModeSalary, today, tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.repo.RecentJobs(gctx, settings.ModeSalary, today, tomorrow, latestJobsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.SalaryDashboard{}, err
	}

	resp := dashboard.SalaryDashboard{
		Workers:      make([]dashboard.WorkerDay, 0, len(roster)),
		TotalSalary:  decimal.Zero,
		TodayRevenue: totals.Revenue,
		LatestJobs:   latest,
	}
	if resp.LatestJobs == nil {
		resp.LatestJobs = []dashboard.RecentJob{}
	}

	for _, row := range roster {
		salary, err := s.dailySalary(ctx, row)
		if err != nil {
			return dashboard.SalaryDashboard{}, err
		}
		resp.Workers = append(resp.Workers, dashboard.WorkerDay{
			WorkerID:    row.WorkerID,
			Username:    row.Username,
			FullName:    row.FullName,
			IsPresent:   row.IsPresent,
			DailySalary: salary,
		})
		if row.IsPresent {
			resp.PresentCount++
			resp.TotalSalary = resp.TotalSalary.Add(salary)
		}
	}
	resp.TodayProfit = resp.TodayRevenue.Sub(resp.TotalSalary)

	return resp, nil
}

// dailySalary creates the default profile for workers who have none yet.
func (s *DashboardServiceImpl) dailySalary(ctx context.Context, row dashboard.RosterRow) (decimal.Decimal, error) {
	if row.DailySalary != nil {
		return *row.DailySalary, nil
	}
	profile, err := s.profileRepo.GetOrCreate(ctx, row.WorkerID, worker.DefaultDailySalary)
	if err != nil {
		return decimal.Zero, err
	}
	return profile.DailySalary, nil
}

// fillTrend returns one point per day from start, zero where no job exists.
func fillTrend(start time.Time, days int, totals []dashboard.DayTotals) []dashboard.DailyPoint {
	byDay := make(map[string]dashboard.DayTotals, len(totals))
	for _, t := range totals {
		byDay[t.Day.Format(time.DateOnly)] = t
	}

	points := make([]dashboard.DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		point := dashboard.DailyPoint{Date: day, Revenue: decimal.Zero, Profit: decimal.Zero}
		if t, ok := byDay[day]; ok {
			point.Revenue = t.Revenue
			point.Profit = t.Revenue.Sub(t.Commission)
		}
		points = append(points, point)
	}
	return points
}
