package dashboard

import (
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// DashboardResponse carries exactly one of Commission or Salary, matching Mode.
type DashboardResponse struct {
	Mode       settings.Mode        `json:"mode"`
	Date       string               `json:"date"`
	Commission *CommissionDashboard `json:"commission,omitempty"`
	Salary     *SalaryDashboard     `json:"salary,omitempty"`
}

type CommissionDashboard struct {
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodayCommission decimal.Decimal `json:"today_commission"`
	TodayProfit     decimal.Decimal `json:"today_profit"`
	ProcessingCount int64           `json:"processing_count"`
	MonthProfit     decimal.Decimal `json:"month_profit"`
	YearProfit      decimal.Decimal `json:"year_profit"`
	Last7Days       []DailyPoint    `json:"last_7_days"`
}

type DailyPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

type SalaryDashboard struct {
	Workers      []WorkerDay     `json:"workers"`
	PresentCount int             `json:"present_count"`
	TotalSalary  decimal.Decimal `json:"total_salary"`
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodayProfit  decimal.Decimal `json:"today_profit"`
	LatestJobs   []RecentJob     `json:"latest_jobs"`
}

type WorkerDay struct {
	WorkerID    string          `json:"worker_id"`
	Username    string          `json:"username"`
	FullName    string          `json:"full_name"`
	IsPresent   bool            `json:"is_present"`
	DailySalary decimal.Decimal `json:"daily_salary"`
}

type RecentJob struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	CarPlate    string          `json:"car_plate"`
	ServiceName *string         `json:"service_name,omitempty"`
	WorkerName  *string         `json:"worker_name,omitempty"`
	Status      job.Status      `json:"status"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	CreatedAt   time.Time       `json:"created_at"`
}
