package dashboard

import "context"

type DashboardService interface {
	// Get builds the dashboard for the current compensation mode.
	Get(ctx context.Context) (DashboardResponse, error)
	Commission(ctx context.Context) (CommissionDashboard, error)
	Salary(ctx context.Context) (SalaryDashboard, error)
}
