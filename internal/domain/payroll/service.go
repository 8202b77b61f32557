package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayrollService interface {
	// Earnings sums what workerID earned in period under the current mode.
	Earnings(ctx context.Context, workerID string, period Period) (Earnings, error)
	MonthlyEarnings(ctx context.Context, workerID string) (Earnings, error)
	MonthlyAdvances(ctx context.Context, workerID string) (decimal.Decimal, error)
	NetSalary(ctx context.Context, workerID string) (decimal.Decimal, error)

	WorkerReport(ctx context.Context, workerID string, month string) (WorkerPayrollResponse, error)
	Report(ctx context.Context, month string) (PayrollReportResponse, error)
	// ExportReport renders Report as an XLSX workbook.
	ExportReport(ctx context.Context, month string) ([]byte, string, error)
}
