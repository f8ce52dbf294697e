package repository

import "context"

// Repos juego de repositorios atados a una misma transacción.
type Repos struct {
	Ingredients  IngredientRepository
	Recipes      RecipeRepository
	Products     ProductRepository
	Sales        SaleRepository
	InventoryTxs InventoryTransactionRepository
	Expenses     ExpenseRepository
	Employees    EmployeeRepository
}

// TxRunner coordinador de transacciones: ejecuta fn con los repos atados a una
// transacción y hace Commit si fn devuelve nil o Rollback si devuelve error.
// Toda operación que escribe en más de una tabla debe pasar por aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
