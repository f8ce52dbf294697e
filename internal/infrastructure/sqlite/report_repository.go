package sqlite

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre ventas, gastos y empleados.
// Nunca escribe; todas las agregaciones excluyen filas inactivas/anuladas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetDailyMetrics ingreso, COGS y número de transacciones de un día calendario.
// El COGS se deriva por subconsulta correlacionada línea de venta → producto →
// receta → líneas de receta → ingrediente, con el precio VIGENTE del ingrediente.
func (r *ReportRepo) GetDailyMetrics(date time.Time) (revenue, cogs decimal.Decimal, txCount int64, err error) {
	from, to := dayRange(date)

	err = r.q.QueryRow(`
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE is_active = 1 AND created_at >= ? AND created_at < ?`,
		from, to,
	).Scan(&revenue, &txCount)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("reports.GetDailyMetrics ventas: %w", err)
	}

	err = r.q.QueryRow(`
		SELECT COALESCE(SUM(si.quantity * (
			SELECT COALESCE(SUM(ri.quantity * i.cost_per_unit), 0)
			FROM recipe_items ri
			JOIN ingredients i ON i.id = ri.ingredient_id
			WHERE ri.recipe_id = p.recipe_id AND ri.is_active = 1
		)), 0)
		FROM sale_items si
		JOIN sales s   ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.is_active = 1 AND si.is_active = 1
		  AND p.recipe_id IS NOT NULL
		  AND s.created_at >= ? AND s.created_at < ?`,
		from, to,
	).Scan(&cogs)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("reports.GetDailyMetrics cogs: %w", err)
	}
	return revenue, cogs, txCount, nil
}

// GetExpenseTotal gastos activos fechados dentro del rango [from, to).
func (r *ReportRepo) GetExpenseTotal(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE is_active = 1 AND date >= ? AND date < ?`,
		from.UTC(), to.UTC(),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetExpenseTotal: %w", err)
	}
	return total, nil
}

// GetRecurringExpenseTotal suma de gastos recurrentes activos.
func (r *ReportRepo) GetRecurringExpenseTotal() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses WHERE is_active = 1 AND is_recurring = 1`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetRecurringExpenseTotal: %w", err)
	}
	return total, nil
}

// GetDailyLaborCost salario diario equivalente de los empleados activos:
// daily tal cual, hourly × 8, monthly / 30.
func (r *ReportRepo) GetDailyLaborCost() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(`
		SELECT COALESCE(SUM(CASE wage_type
			WHEN 'hourly'  THEN wage_amount * 8
			WHEN 'monthly' THEN wage_amount / 30.0
			ELSE wage_amount
		END), 0)
		FROM employees WHERE is_active = 1`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetDailyLaborCost: %w", err)
	}
	return total, nil
}

// GetSalesAverages promedios de los últimos `days` días de ventas activas:
// ingreso promedio por venta y transacciones promedio por día.
func (r *ReportRepo) GetSalesAverages(days int) (repository.SalesAverages, error) {
	from, to := lastDays(days)

	var total decimal.Decimal
	var count int64
	err := r.q.QueryRow(`
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE is_active = 1 AND created_at >= ? AND created_at < ?`,
		from, to,
	).Scan(&total, &count)
	if err != nil {
		return repository.SalesAverages{}, fmt.Errorf("reports.GetSalesAverages: %w", err)
	}

	out := repository.SalesAverages{TotalSales: count}
	if count > 0 {
		out.AvgRevenuePerSale = total.Div(decimal.NewFromInt(count))
	}
	if days > 0 {
		out.AvgDailySales = decimal.NewFromInt(count).Div(decimal.NewFromInt(int64(days)))
	}
	return out, nil
}

// GetBestSellers top `limit` productos por cantidad vendida en los últimos `days` días.
func (r *ReportRepo) GetBestSellers(days, limit int) ([]repository.BestSellerResult, error) {
	if limit <= 0 {
		limit = 10
	}
	from, to := lastDays(days)

	rows, err := r.q.Query(`
		SELECT p.id, p.name, p.category,
		       SUM(si.quantity)            AS quantity_sold,
		       COALESCE(SUM(si.subtotal), 0) AS total_revenue
		FROM sale_items si
		JOIN sales s    ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.is_active = 1 AND si.is_active = 1
		  AND s.created_at >= ? AND s.created_at < ?
		GROUP BY p.id, p.name, p.category
		ORDER BY quantity_sold DESC
		LIMIT ?`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetBestSellers: %w", err)
	}
	defer rows.Close()

	var out []repository.BestSellerResult
	for rows.Next() {
		var row repository.BestSellerResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Category,
			&row.QuantitySold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("reports.GetBestSellers scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetPeakHours ventas e ingreso agrupados por hora del día en los últimos `days` días.
func (r *ReportRepo) GetPeakHours(days int) ([]repository.PeakHourResult, error) {
	from, to := lastDays(days)

	rows, err := r.q.Query(`
		SELECT CAST(strftime('%H', created_at) AS INTEGER) AS hour,
		       COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE is_active = 1 AND created_at >= ? AND created_at < ?
		GROUP BY hour
		ORDER BY hour ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.GetPeakHours: %w", err)
	}
	defer rows.Close()

	var out []repository.PeakHourResult
	for rows.Next() {
		var row repository.PeakHourResult
		if err := rows.Scan(&row.Hour, &row.SaleCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetPeakHours scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
