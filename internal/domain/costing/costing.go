package costing

import "github.com/shopspring/decimal"

// RecipeLine cantidad de un ingrediente con su costo unitario vigente.
type RecipeLine struct {
	Quantity    decimal.Decimal
	CostPerUnit decimal.Decimal
}

// RecipeCost suma quantity*costo unitario de cada línea y deriva el costo por porción.
// TotalCost = Σ (qty_i × costoUnitario_i); CostPerServing = TotalCost / servings.
// Con servings <= 0 el costo por porción es cero (receta mal formada, no divide).
func RecipeCost(lines []RecipeLine, servings int) (total, perServing decimal.Decimal) {
	total = decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.CostPerUnit))
	}
	if servings <= 0 {
		return total, decimal.Zero
	}
	return total, total.Div(decimal.NewFromInt(int64(servings)))
}

// SaleTotals montos derivados de una venta.
type SaleTotals struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal // DiscountAmount + Subtotal*DiscountPercent/100
	Total        decimal.Decimal
	ChangeAmount decimal.Decimal
}

// SaleLine una línea de venta para el cálculo de totales.
type SaleLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeSaleTotals aplica las fórmulas de la venta:
// Subtotal = Σ qty×precio; Descuento = monto + Subtotal×porcentaje/100;
// Total = Subtotal - Descuento; Cambio = recibido - Total.
// No rechaza cambio negativo: esa validación es de la capa que llama.
func ComputeSaleTotals(lines []SaleLine, discountAmount, discountPercent, amountReceived decimal.Decimal) SaleTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	discount := discountAmount.Add(subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100)))
	total := subtotal.Sub(discount)
	return SaleTotals{
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        total,
		ChangeAmount: amountReceived.Sub(total),
	}
}
