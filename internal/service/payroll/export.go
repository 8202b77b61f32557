package payroll

import (
	"context"
	"fmt"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/xuri/excelize/v2"
)

// ExportReport implements payroll.PayrollService. It returns the workbook
// bytes and a download file name.
func (s *PayrollServiceImpl) ExportReport(ctx context.Context, month string) ([]byte, string, error) {
	report, err := s.Report(ctx, month)
	if err != nil {
		return nil, "", err
	}

	data, err := exportReportXLSX(report)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render payroll workbook: %w", err)
	}
	return data, fmt.Sprintf("payroll-%s.xlsx", report.Month), nil
}

func exportReportXLSX(report payroll.PayrollReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + report.Month
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Username", "Full name", "Mode", "Days present", "Earned", "Advances", "Net"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, row := range report.Workers {
		var days any = ""
		if row.DaysPresent != nil {
			days = *row.DaysPresent
		}
		values := []any{
			row.Username,
			row.FullName,
			string(row.Mode),
			days,
			row.Earned.InexactFloat64(),
			row.Advances.InexactFloat64(),
			row.Net.InexactFloat64(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	totalRow := len(report.Workers) + 2
	totals := map[int]any{
		1: "Total",
		3: string(report.Mode),
		5: report.TotalEarned.InexactFloat64(),
		6: report.TotalAdvances.InexactFloat64(),
		7: report.TotalNet.InexactFloat64(),
	}
	for c, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(c, totalRow)
		_ = f.SetCellValue(sheet, cell, v)
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "D", 14)
	_ = f.SetColWidth(sheet, "E", "G", 16)

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", "G1", bold)
	lastCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), lastCell, bold)

	if report.Mode == settings.ModeCommission {
		_ = f.SetColVisible(sheet, "D", false)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
