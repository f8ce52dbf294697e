package costing

import "github.com/shopspring/decimal"

// CostRatio fracción del ingreso por venta que se asume como costo en el
// punto de equilibrio. Es una aproximación deliberada (40%), no el COGS real
// por recetas que usa el reporte diario.
var CostRatio = decimal.NewFromFloat(0.40)

// BreakEven resultado del análisis de punto de equilibrio.
type BreakEven struct {
	DailyFixedCosts    decimal.Decimal
	AvgRevenuePerSale  decimal.Decimal
	AvgCostPerSale     decimal.Decimal
	ContributionMargin decimal.Decimal
	BreakEvenSales     int64 // ventas/día necesarias para cubrir el costo fijo
	AvgDailySales      decimal.Decimal
	AboveBreakEven     bool
}

// ComputeBreakEven deriva el punto de equilibrio:
// margen de contribución = ingreso promedio por venta - costo promedio por venta
// (costo promedio = ingreso promedio × CostRatio);
// ventas de equilibrio = ceil(costo fijo diario / margen) si el margen es positivo, si no 0.
func ComputeBreakEven(dailyFixedCosts, avgRevenuePerSale, avgDailySales decimal.Decimal) BreakEven {
	avgCost := avgRevenuePerSale.Mul(CostRatio)
	margin := avgRevenuePerSale.Sub(avgCost)

	var needed int64
	if margin.GreaterThan(decimal.Zero) {
		needed = dailyFixedCosts.Div(margin).Ceil().IntPart()
	}

	return BreakEven{
		DailyFixedCosts:    dailyFixedCosts,
		AvgRevenuePerSale:  avgRevenuePerSale,
		AvgCostPerSale:     avgCost,
		ContributionMargin: margin,
		BreakEvenSales:     needed,
		AvgDailySales:      avgDailySales,
		AboveBreakEven:     avgDailySales.GreaterThanOrEqual(decimal.NewFromInt(needed)),
	}
}
