package payroll

import (
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

type WorkerPayrollResponse struct {
	WorkerID    string          `json:"worker_id"`
	Username    string          `json:"username"`
	FullName    string          `json:"full_name"`
	Month       string          `json:"month"`
	Mode        settings.Mode   `json:"mode"`
	Earned      decimal.Decimal `json:"earned"`
	DaysPresent *int            `json:"days_present,omitempty"`
	Advances    decimal.Decimal `json:"advances"`
	Net         decimal.Decimal `json:"net"`
}

type PayrollReportResponse struct {
	Month         string                  `json:"month"`
	Mode          settings.Mode           `json:"mode"`
	Workers       []WorkerPayrollResponse `json:"workers"`
	TotalEarned   decimal.Decimal         `json:"total_earned"`
	TotalAdvances decimal.Decimal         `json:"total_advances"`
	TotalNet      decimal.Decimal         `json:"total_net"`
}
