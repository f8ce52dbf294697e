package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
)

func TestSaleRepo_UpdateParcial(t *testing.T) {
	_, r := newTestDB(t)
	prod := createProduct(t, r, "Empanada", "5.00", nil)
	sa := createSaleWithItem(t, r, prod.ID, 2, "5.00")

	method := entity.PaymentCard
	notes := "cliente pagó con tarjeta, corregido"
	got, err := r.Sales.Update(sa.ID, entity.SalePatch{PaymentMethod: &method, Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.PaymentCard, got.PaymentMethod)
	assert.Equal(t, notes, got.Notes)
	// Los montos nacen del checkout y el parche no los alcanza.
	assert.True(t, got.Subtotal.Equal(sa.Subtotal), "el subtotal no se toca")
	assert.True(t, got.Total.Equal(sa.Total), "el total no se toca")
	assert.Equal(t, sa.Reference, got.Reference)
}

func TestSaleRepo_UpdateParcheVacio(t *testing.T) {
	_, r := newTestDB(t)
	prod := createProduct(t, r, "Jugo", "3.00", nil)
	sa := createSaleWithItem(t, r, prod.ID, 1, "3.00")

	got, err := r.Sales.Update(sa.ID, entity.SalePatch{})
	require.NoError(t, err)
	require.NotNil(t, got, "parche vacío devuelve la fila tal cual")
	assert.Equal(t, entity.PaymentCash, got.PaymentMethod)
	assert.Equal(t, sa.Notes, got.Notes)
}

func TestSaleRepo_UpdateVentaAnulada(t *testing.T) {
	_, r := newTestDB(t)
	prod := createProduct(t, r, "Torta", "8.00", nil)
	sa := createSaleWithItem(t, r, prod.ID, 1, "8.00")

	ok, err := r.Sales.Delete(sa.ID)
	require.NoError(t, err)
	require.True(t, ok)

	notes := "no debería entrar"
	got, err := r.Sales.Update(sa.ID, entity.SalePatch{Notes: &notes})
	require.NoError(t, err)
	assert.Nil(t, got, "una venta anulada no es parcheable")
}
