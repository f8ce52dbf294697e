package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReportResult utilidad neta de un día calendario.
// NetProfit = Revenue - COGS - Expenses - Labor.
type DailyReportResult struct {
	Date             time.Time
	Revenue          decimal.Decimal
	COGS             decimal.Decimal // costo de ingredientes de lo vendido, vía receta
	Expenses         decimal.Decimal
	Labor            decimal.Decimal // suma del salario diario equivalente de empleados activos
	NetProfit        decimal.Decimal
	TransactionCount int64
	AvgOrderValue    decimal.Decimal // Revenue / TransactionCount; 0 sin transacciones
}

// BestSellerResult producto más vendido en el período.
type BestSellerResult struct {
	ProductID    int64
	ProductName  string
	Category     string
	QuantitySold int64
	TotalRevenue decimal.Decimal
}

// PeakHourResult ventas e ingreso agrupados por hora del día (0-23).
type PeakHourResult struct {
	Hour      int
	SaleCount int64
	Revenue   decimal.Decimal
}

// SalesAverages promedios de los últimos días para el punto de equilibrio.
type SalesAverages struct {
	AvgRevenuePerSale decimal.Decimal
	AvgDailySales     decimal.Decimal
	TotalSales        int64
}

// ReportRepository consultas de solo lectura sobre el ledger de ventas,
// gastos y empleados. No escribe nunca.
type ReportRepository interface {
	// GetDailyMetrics ingreso, COGS y número de transacciones de un día calendario.
	GetDailyMetrics(date time.Time) (revenue, cogs decimal.Decimal, txCount int64, err error)
	// GetExpenseTotal gastos activos fechados dentro del rango [from, to).
	GetExpenseTotal(from, to time.Time) (decimal.Decimal, error)
	// GetRecurringExpenseTotal suma de gastos recurrentes activos.
	GetRecurringExpenseTotal() (decimal.Decimal, error)
	// GetDailyLaborCost suma del salario diario equivalente de los empleados activos.
	GetDailyLaborCost() (decimal.Decimal, error)
	// GetSalesAverages ingreso promedio por venta y ventas promedio por día de los últimos `days` días.
	GetSalesAverages(days int) (SalesAverages, error)
	// GetBestSellers top `limit` productos por cantidad vendida en los últimos `days` días.
	GetBestSellers(days, limit int) ([]BestSellerResult, error)
	// GetPeakHours ventas e ingreso por hora del día en los últimos `days` días.
	GetPeakHours(days int) ([]PeakHourResult, error)
}
