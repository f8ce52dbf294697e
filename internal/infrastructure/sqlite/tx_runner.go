package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// NewRepos construye el juego de repositorios sobre un Querier (conexión o tx).
func NewRepos(q Querier) *repository.Repos {
	return &repository.Repos{
		Ingredients:  NewIngredientRepository(q),
		Recipes:      NewRecipeRepository(q),
		Products:     NewProductRepository(q),
		Sales:        NewSaleRepository(q),
		InventoryTxs: NewInventoryTransactionRepository(q),
		Expenses:     NewExpenseRepository(q),
		Employees:    NewEmployeeRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción SQLite. Toda operación
// que escribe en más de una tabla (venta + líneas + stock, receta + líneas)
// debe pasar por aquí; una escritura de una sola tabla puede ir directa.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner sobre la conexión compartida.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace
// Commit si fn devuelve nil o Rollback si devuelve error. Los statements dentro
// de fn se ejecutan en el orden emitido: o se ven todos o ninguno.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *repository.Repos) error) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
