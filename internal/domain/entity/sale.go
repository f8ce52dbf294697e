package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentEWallet  = "ewallet"
	PaymentTransfer = "transfer"
)

// ValidPaymentMethod indica si el método de pago pertenece al catálogo soportado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentEWallet, PaymentTransfer:
		return true
	}
	return false
}

// Sale representa una venta cerrada. La anulación es el único cambio de estado
// posible (activa -> anulada) y es unidireccional.
//
// Total = Subtotal - DiscountAmount - Subtotal*DiscountPercent/100
// ChangeAmount = AmountReceived - Total (la capa de presentación valida que no sea negativo)
type Sale struct {
	ID              int64
	Reference       string // código de recibo (UUID) para el ticket y el ledger
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	Total           decimal.Decimal
	PaymentMethod   string
	AmountReceived  decimal.Decimal
	ChangeAmount    decimal.Decimal
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Active          bool
}

// SalePatch campos editables de una venta cerrada; nil = sin cambio. Subtotal,
// descuentos y total nacen del checkout y quedan inmutables.
type SalePatch struct {
	PaymentMethod *string
	Notes         *string
}

// SaleItem una línea de venta. Subtotal = Quantity * UnitPrice.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// SaleItemDetail línea de venta con los datos del producto (para mostrar).
type SaleItemDetail struct {
	SaleItem
	ProductName     string
	ProductCategory string
}

// SaleWithItems venta con sus líneas resueltas.
type SaleWithItems struct {
	Sale
	Items []SaleItemDetail
}

// NewSaleLine entrada de una línea al crear la venta.
type NewSaleLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// DailySummary resumen de ventas de un día calendario.
type DailySummary struct {
	Date             time.Time
	TotalSales       decimal.Decimal
	TransactionCount int64
	AverageSale      decimal.Decimal
	TotalDiscount    decimal.Decimal
}
