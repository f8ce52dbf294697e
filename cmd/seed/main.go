// seed puebla una base de datos local con datos de demostración: ingredientes,
// una receta con su producto, un gasto recurrente, un empleado y una venta de
// ejemplo, y al final imprime el reporte del día y el punto de equilibrio.
//
// Uso: go run ./cmd/seed
// La ruta del archivo .db sale de DB_PATH (por defecto puntoventa.db).
package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/application/employees"
	"github.com/jhoicas/puntoventa/internal/application/inventory"
	"github.com/jhoicas/puntoventa/internal/application/recipes"
	"github.com/jhoicas/puntoventa/internal/application/reports"
	"github.com/jhoicas/puntoventa/internal/application/sales"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/infrastructure/sqlite"
	"github.com/jhoicas/puntoventa/pkg/config"
	"github.com/jhoicas/puntoventa/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db", cfg.DB.Path).
		Msg("sembrando datos de demostración")

	db, err := sqlite.Open(cfg.DB.Path, sqlite.Options{BusyTimeoutMS: cfg.DB.BusyTimeout})
	if err != nil {
		log.Fatal().Err(err).Msg("abrir SQLite")
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	repos := sqlite.NewRepos(db.SQL())
	txRunner := sqlite.NewTxRunner(db)

	recipeUC := recipes.NewUseCase(txRunner, repos.Recipes)
	saleUC := sales.NewUseCase(txRunner, repos.Sales)
	inventoryUC := inventory.NewUseCase(txRunner)
	employeeUC := employees.NewUseCase(repos.Employees)
	reportUC := reports.NewUseCase(sqlite.NewReportRepository(db.SQL()))

	ctx := context.Background()

	// Ingredientes base de una cafetería pequeña.
	coffee := &entity.Ingredient{
		Name:              "Café molido",
		CostPerUnit:       dec("0.08"), // por gramo
		Unit:              entity.UnitG,
		LowStockThreshold: dec("200"),
		Supplier:          "Tostadores del Valle",
	}
	milk := &entity.Ingredient{
		Name:              "Leche entera",
		CostPerUnit:       dec("0.0012"), // por mililitro
		Unit:              entity.UnitMl,
		LowStockThreshold: dec("1000"),
		Supplier:          "Lácteos La Pradera",
	}
	for _, ing := range []*entity.Ingredient{coffee, milk} {
		if err := repos.Ingredients.Create(ing); err != nil {
			log.Fatal().Err(err).Str("ingrediente", ing.Name).Msg("crear ingrediente")
		}
	}

	// Entrada de mercancía inicial.
	if err := inventoryUC.RegisterStockIn(ctx, coffee.ID, dec("1000"), decPtr("0.075"), "compra inicial"); err != nil {
		log.Fatal().Err(err).Msg("entrada de café")
	}
	if err := inventoryUC.RegisterStockIn(ctx, milk.ID, dec("5000"), decPtr("0.0011"), "compra inicial"); err != nil {
		log.Fatal().Err(err).Msg("entrada de leche")
	}

	// Receta: café con leche, 1 porción.
	recipe, err := recipeUC.CreateRecipe(ctx, recipes.NewRecipeInput{
		Name:     "Café con leche",
		Servings: 1,
		Items: []entity.NewRecipeItem{
			{IngredientID: coffee.ID, Quantity: dec("18"), Unit: entity.UnitG},
			{IngredientID: milk.ID, Quantity: dec("150"), Unit: entity.UnitMl},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear receta")
	}
	log.Info().
		Str("receta", recipe.Name).
		Str("costo_por_porcion", recipe.CostPerServing.String()).
		Msg("receta creada")

	product := &entity.Product{
		Name:           "Café con leche",
		Category:       entity.CategoryBeverage,
		Price:          dec("3.50"),
		RecipeID:       &recipe.ID,
		TrackInventory: true,
	}
	if err := repos.Products.Create(product); err != nil {
		log.Fatal().Err(err).Msg("crear producto")
	}

	// Gasto fijo mensual prorrateado a diario por el reporte de equilibrio.
	rent := &entity.Expense{
		Name:      "Arriendo del local",
		Amount:    dec("25.00"),
		Category:  "rent",
		Recurring: true,
	}
	if err := repos.Expenses.Create(rent); err != nil {
		log.Fatal().Err(err).Msg("crear gasto")
	}

	emp, err := employeeUC.CreateEmployee(employees.NewEmployeeInput{
		Name:       "Carolina Ruiz",
		Role:       "barista",
		WageType:   entity.WageDaily,
		WageAmount: dec("30.00"),
		PIN:        "2468",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear empleado")
	}
	log.Info().Str("empleado", emp.Name).Msg("empleado registrado")

	// Venta de demostración: dos cafés con 10% de descuento.
	sale, err := saleUC.CreateSale(ctx, sales.CreateSaleInput{
		Lines: []entity.NewSaleLine{
			{ProductID: product.ID, Quantity: 2, UnitPrice: product.Price},
		},
		DiscountPercent: dec("10"),
		PaymentMethod:   entity.PaymentCash,
		AmountReceived:  dec("10.00"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear venta")
	}
	log.Info().
		Str("referencia", sale.Reference).
		Str("total", sale.Total.String()).
		Str("cambio", sale.ChangeAmount.String()).
		Msg("venta registrada")

	report, err := reportUC.GetDailyReport(sale.CreatedAt)
	if err != nil {
		log.Fatal().Err(err).Msg("reporte diario")
	}
	log.Info().
		Str("ingreso", report.Revenue.String()).
		Str("cogs", report.COGS.String()).
		Str("gastos", report.Expenses.String()).
		Str("labor", report.Labor.String()).
		Str("utilidad_neta", report.NetProfit.String()).
		Int64("ventas", report.TransactionCount).
		Msg("reporte del día")

	be, err := reportUC.GetBreakEvenAnalysis()
	if err != nil {
		log.Fatal().Err(err).Msg("punto de equilibrio")
	}
	log.Info().
		Str("costo_fijo_diario", be.DailyFixedCosts.String()).
		Int64("ventas_necesarias", be.BreakEvenSales).
		Bool("sobre_equilibrio", be.AboveBreakEven).
		Msg("punto de equilibrio")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
