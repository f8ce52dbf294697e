package sqlite_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
	"github.com/jhoicas/puntoventa/internal/infrastructure/sqlite"
)

func createProduct(t *testing.T, r *repository.Repos, name, price string, recipeID *int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:           name,
		Category:       entity.CategoryFood,
		Price:          dec(t, price),
		RecipeID:       recipeID,
		TrackInventory: recipeID != nil,
	}
	require.NoError(t, r.Products.Create(p))
	return p
}

func createSaleWithItem(t *testing.T, r *repository.Repos, productID int64, qty int, unitPrice string) *entity.Sale {
	t.Helper()
	price := dec(t, unitPrice)
	total := price.Mul(decimal.NewFromInt(int64(qty)))
	sa := &entity.Sale{
		Reference:      "test",
		Subtotal:       total,
		Total:          total,
		PaymentMethod:  entity.PaymentCash,
		AmountReceived: total,
	}
	require.NoError(t, r.Sales.Create(sa))
	require.NoError(t, r.Sales.CreateItem(&entity.SaleItem{
		SaleID:    sa.ID,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: price,
		Subtotal:  total,
	}))
	return sa
}

func TestReportRepo_GetDailyLaborCost(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	// Diario 25 tal cual, por hora 5*8 = 40, mensual 300/30 = 10.
	for _, e := range []*entity.Employee{
		{Name: "Diario", WageType: entity.WageDaily, WageAmount: dec(t, "25")},
		{Name: "Por hora", WageType: entity.WageHourly, WageAmount: dec(t, "5")},
		{Name: "Mensual", WageType: entity.WageMonthly, WageAmount: dec(t, "300")},
	} {
		require.NoError(t, r.Employees.Create(e))
	}

	labor, err := reports.GetDailyLaborCost()
	require.NoError(t, err)
	assert.True(t, labor.Equal(dec(t, "75")), "25 + 40 + 10 = 75, quedó %s", labor)
}

func TestReportRepo_GetDailyLaborCost_ExcluyeInactivos(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	e := &entity.Employee{Name: "Saliente", WageType: entity.WageDaily, WageAmount: dec(t, "50")}
	require.NoError(t, r.Employees.Create(e))
	_, err := r.Employees.Delete(e.ID)
	require.NoError(t, err)

	labor, err := reports.GetDailyLaborCost()
	require.NoError(t, err)
	assert.True(t, labor.IsZero(), "un empleado dado de baja no cuesta")
}

func TestReportRepo_GetRecurringExpenseTotal(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	require.NoError(t, r.Expenses.Create(&entity.Expense{
		Name: "Arriendo", Amount: dec(t, "20"), Recurring: true,
	}))
	require.NoError(t, r.Expenses.Create(&entity.Expense{
		Name: "Servicios", Amount: dec(t, "15"), Recurring: true,
	}))
	require.NoError(t, r.Expenses.Create(&entity.Expense{
		Name: "Reparación puntual", Amount: dec(t, "80"), Recurring: false,
	}))

	total, err := reports.GetRecurringExpenseTotal()
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(t, "35")), "solo los recurrentes suman: %s", total)
}

func TestReportRepo_GetExpenseTotal_RangoSemiAbierto(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Expenses.Create(&entity.Expense{
		Name: "Dentro", Amount: dec(t, "10"), Date: day.Add(5 * time.Hour),
	}))
	require.NoError(t, r.Expenses.Create(&entity.Expense{
		Name: "Día siguiente", Amount: dec(t, "99"), Date: day.AddDate(0, 0, 1),
	}))

	total, err := reports.GetExpenseTotal(day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(t, "10")), "el límite superior queda fuera del rango")
}

func TestReportRepo_GetDailyMetrics_ConCOGS(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	// Ingrediente a 10/unidad, receta de 2 unidades: costo por producto vendido = 20.
	ing := createIngredient(t, r, "Queso", "10", "100")
	rec := &entity.Recipe{Name: "Sandwich", Servings: 1}
	require.NoError(t, r.Recipes.Create(rec))
	require.NoError(t, r.Recipes.CreateItem(&entity.RecipeItem{
		RecipeID: rec.ID, IngredientID: ing.ID, Quantity: dec(t, "2"), Unit: entity.UnitG,
	}))
	product := createProduct(t, r, "Sandwich", "50", &rec.ID)

	createSaleWithItem(t, r, product.ID, 2, "50") // ingreso 100, COGS 2*20 = 40

	revenue, cogs, txCount, err := reports.GetDailyMetrics(time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, revenue.Equal(dec(t, "100")), "ingreso: %s", revenue)
	assert.True(t, cogs.Equal(dec(t, "40")), "COGS: %s", cogs)
	assert.Equal(t, int64(1), txCount)
}

func TestReportRepo_GetDailyMetrics_DiaSinVentas(t *testing.T) {
	db, _ := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	revenue, cogs, txCount, err := reports.GetDailyMetrics(time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())
	assert.True(t, cogs.IsZero())
	assert.Zero(t, txCount)
}

func TestReportRepo_GetBestSellers_OrdenPorCantidad(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	menor := createProduct(t, r, "Té", "2", nil)
	mayor := createProduct(t, r, "Café", "3", nil)
	createSaleWithItem(t, r, menor.ID, 1, "2")
	createSaleWithItem(t, r, mayor.ID, 5, "3")

	top, err := reports.GetBestSellers(30, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, mayor.ID, top[0].ProductID, "el más vendido va primero")
	assert.Equal(t, int64(5), top[0].QuantitySold)
	assert.True(t, top[0].TotalRevenue.Equal(dec(t, "15")))
}

func TestReportRepo_GetSalesAverages(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	p := createProduct(t, r, "Café", "4", nil)
	createSaleWithItem(t, r, p.ID, 1, "4")
	createSaleWithItem(t, r, p.ID, 2, "4")

	avg, err := reports.GetSalesAverages(30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), avg.TotalSales)
	assert.True(t, avg.AvgRevenuePerSale.Equal(dec(t, "6")), "(4+8)/2 = 6: %s", avg.AvgRevenuePerSale)
	assert.True(t, avg.AvgDailySales.Equal(dec(t, "2").Div(dec(t, "30"))))
}

func TestReportRepo_GetPeakHours(t *testing.T) {
	db, r := newTestDB(t)
	reports := sqlite.NewReportRepository(db.SQL())

	p := createProduct(t, r, "Café", "4", nil)
	createSaleWithItem(t, r, p.ID, 1, "4")

	hours, err := reports.GetPeakHours(30)
	require.NoError(t, err)
	require.Len(t, hours, 1, "una sola venta ocupa una sola franja horaria")
	assert.Equal(t, time.Now().UTC().Hour(), hours[0].Hour)
	assert.Equal(t, int64(1), hours[0].SaleCount)
}
