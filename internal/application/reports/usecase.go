package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/costing"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

// averagingDays ventana de promedios para equilibrio, más vendidos y horas pico.
const averagingDays = 30

// UseCase motor de reportes: agregación de solo lectura sobre el ledger de
// ventas, gastos y empleados. No escribe nunca.
type UseCase struct {
	reports repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reports repository.ReportRepository) *UseCase {
	return &UseCase{reports: reports}
}

// GetDailyReport utilidad neta de un día calendario:
// netProfit = ingreso - COGS - gastos del día - costo laboral diario.
// El COGS es el costo real de ingredientes de lo vendido (vía receta), a
// diferencia de la aproximación del punto de equilibrio.
func (uc *UseCase) GetDailyReport(date time.Time) (*repository.DailyReportResult, error) {
	revenue, cogs, txCount, err := uc.reports.GetDailyMetrics(date)
	if err != nil {
		return nil, err
	}

	from := startOfDay(date)
	expenses, err := uc.reports.GetExpenseTotal(from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	labor, err := uc.reports.GetDailyLaborCost()
	if err != nil {
		return nil, err
	}

	avgOrder := decimal.Zero
	if txCount > 0 {
		avgOrder = revenue.Div(decimal.NewFromInt(txCount))
	}
	return &repository.DailyReportResult{
		Date:             from,
		Revenue:          revenue,
		COGS:             cogs,
		Expenses:         expenses,
		Labor:            labor,
		NetProfit:        revenue.Sub(cogs).Sub(expenses).Sub(labor),
		TransactionCount: txCount,
		AvgOrderValue:    avgOrder,
	}, nil
}

// GetBreakEvenAnalysis punto de equilibrio sobre los últimos 30 días:
// costo fijo diario = gastos recurrentes + costo laboral diario; el costo por
// venta se aproxima como 40% del ingreso por venta (aproximación deliberada,
// distinta del COGS exacto del reporte diario).
func (uc *UseCase) GetBreakEvenAnalysis() (*costing.BreakEven, error) {
	recurring, err := uc.reports.GetRecurringExpenseTotal()
	if err != nil {
		return nil, err
	}
	labor, err := uc.reports.GetDailyLaborCost()
	if err != nil {
		return nil, err
	}
	averages, err := uc.reports.GetSalesAverages(averagingDays)
	if err != nil {
		return nil, err
	}

	result := costing.ComputeBreakEven(recurring.Add(labor), averages.AvgRevenuePerSale, averages.AvgDailySales)
	return &result, nil
}

// GetBestSellers top `limit` productos por cantidad vendida en los últimos 30 días.
func (uc *UseCase) GetBestSellers(limit int) ([]repository.BestSellerResult, error) {
	return uc.reports.GetBestSellers(averagingDays, limit)
}

// GetPeakHours ventas e ingreso por hora del día en los últimos 30 días.
func (uc *UseCase) GetPeakHours() ([]repository.PeakHourResult, error) {
	return uc.reports.GetPeakHours(averagingDays)
}

// GetWeeklyTrend el reporte diario de cada uno de los últimos 7 días
// calendario, del más antiguo al más reciente.
func (uc *UseCase) GetWeeklyTrend() ([]*repository.DailyReportResult, error) {
	out := make([]*repository.DailyReportResult, 0, 7)
	today := startOfDay(time.Now())
	for i := 6; i >= 0; i-- {
		rep, err := uc.GetDailyReport(today.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
