package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleCols = `id, reference, subtotal, discount_amount, discount_percent, total,
	payment_method, amount_received, change_amount, notes, created_at, updated_at, is_active`

// SaleRepo implementación del puerto SaleRepository sobre SQLite
// (usable con la conexión compartida o con una tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(s interface{ Scan(dest ...any) error }) (*entity.Sale, error) {
	var sa entity.Sale
	err := s.Scan(
		&sa.ID, &sa.Reference, &sa.Subtotal, &sa.DiscountAmount, &sa.DiscountPercent,
		&sa.Total, &sa.PaymentMethod, &sa.AmountReceived, &sa.ChangeAmount, &sa.Notes,
		&sa.CreatedAt, &sa.UpdatedAt, &sa.Active,
	)
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *SaleRepo) querySales(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		sa, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}

// GetAll ventas activas, más recientes primero. Las anuladas no aparecen.
func (r *SaleRepo) GetAll() ([]*entity.Sale, error) {
	return r.querySales(`SELECT ` + saleCols + `
		FROM sales WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
}

// GetByID obtiene una venta activa por ID; nil si no existe o fue anulada.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	sa, err := scanSale(r.q.QueryRow(`SELECT `+saleCols+`
		FROM sales WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sa, nil
}

func (r *SaleRepo) Exists(id int64) (bool, error) {
	return rowExists(r.q, "sales", id)
}

func (r *SaleRepo) Count() (int64, error) {
	return activeCount(r.q, "sales")
}

// Create persiste la fila de la venta (las líneas van aparte vía CreateItem).
func (r *SaleRepo) Create(sa *entity.Sale) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO sales (reference, subtotal, discount_amount, discount_percent, total,
			payment_method, amount_received, change_amount, notes, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		sa.Reference, sa.Subtotal, sa.DiscountAmount, sa.DiscountPercent, sa.Total,
		sa.PaymentMethod, sa.AmountReceived, sa.ChangeAmount, sa.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	sa.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	sa.CreatedAt, sa.UpdatedAt, sa.Active = now, now, true
	return nil
}

// Update parchea solo los campos provistos (notas, método de pago) y refresca
// updated_at. Devuelve nil si la venta no existe o está anulada; parche vacío =
// fila actual. Los montos no se tocan: quedan como los dejó el checkout.
func (r *SaleRepo) Update(id int64, patch entity.SalePatch) (*entity.Sale, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.PaymentMethod != nil {
		add("payment_method", *patch.PaymentMethod)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)
	_, err := r.q.Exec(`UPDATE sales SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}
	return r.GetByID(id)
}

// Delete borrado blando de la venta (anulación de la fila principal).
func (r *SaleRepo) Delete(id int64) (bool, error) {
	return setActive(r.q, "sales", id, false)
}

func (r *SaleRepo) Restore(id int64) (bool, error) {
	return setActive(r.q, "sales", id, true)
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, subtotal,
			created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	item.CreatedAt, item.UpdatedAt, item.Active = now, now, true
	return nil
}

// ListItems líneas activas de una venta.
func (r *SaleRepo) ListItems(saleID int64) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(`
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal,
		       created_at, updated_at, is_active
		FROM sale_items WHERE sale_id = ? AND is_active = 1 ORDER BY id ASC`, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.Subtotal, &it.CreatedAt, &it.UpdatedAt, &it.Active); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// GetWithItems venta activa con sus líneas y el producto de cada una.
func (r *SaleRepo) GetWithItems(id int64) (*entity.SaleWithItems, error) {
	sa, err := r.GetByID(id)
	if err != nil || sa == nil {
		return nil, err
	}

	rows, err := r.q.Query(`
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.subtotal,
		       si.created_at, si.updated_at, si.is_active,
		       p.name, p.category
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ? AND si.is_active = 1
		ORDER BY si.id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	out := &entity.SaleWithItems{Sale: *sa}
	for rows.Next() {
		var d entity.SaleItemDetail
		if err := rows.Scan(
			&d.ID, &d.SaleID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal,
			&d.CreatedAt, &d.UpdatedAt, &d.Active,
			&d.ProductName, &d.ProductCategory,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out.Items = append(out.Items, d)
	}
	return out, rows.Err()
}

// DeactivateItems borra en blando todas las líneas de la venta (anulación).
func (r *SaleRepo) DeactivateItems(saleID int64) error {
	_, err := r.q.Exec(`
		UPDATE sale_items SET is_active = 0, updated_at = ?
		WHERE sale_id = ? AND is_active = 1`,
		time.Now().UTC(), saleID,
	)
	if err != nil {
		return fmt.Errorf("deactivate sale items: %w", err)
	}
	return nil
}

// GetByDateRange ventas activas con created_at en el rango semiabierto [from, to).
func (r *SaleRepo) GetByDateRange(from, to time.Time) ([]*entity.Sale, error) {
	return r.querySales(`SELECT `+saleCols+`
		FROM sales WHERE is_active = 1 AND created_at >= ? AND created_at < ?
		ORDER BY created_at DESC, id DESC`, from.UTC(), to.UTC())
}

// GetByPaymentMethod ventas activas por método de pago, más recientes primero.
func (r *SaleRepo) GetByPaymentMethod(method string) ([]*entity.Sale, error) {
	return r.querySales(`SELECT `+saleCols+`
		FROM sales WHERE is_active = 1 AND payment_method = ?
		ORDER BY created_at DESC, id DESC`, method)
}

// GetToday ventas activas del día calendario actual.
func (r *SaleRepo) GetToday() ([]*entity.Sale, error) {
	from, to := dayRange(time.Now())
	return r.GetByDateRange(from, to)
}

// GetDailySummary total vendido, transacciones, ticket promedio y descuento
// total de un día calendario. Las ventas anuladas no cuentan.
func (r *SaleRepo) GetDailySummary(date time.Time) (*entity.DailySummary, error) {
	from, to := dayRange(date)
	var total, discount decimal.Decimal
	var count int64
	err := r.q.QueryRow(`
		SELECT COALESCE(SUM(total), 0),
		       COUNT(*),
		       COALESCE(SUM(discount_amount + subtotal * discount_percent / 100), 0)
		FROM sales
		WHERE is_active = 1 AND created_at >= ? AND created_at < ?`,
		from, to,
	).Scan(&total, &count, &discount)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}

	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(count))
	}
	return &entity.DailySummary{
		Date:             from,
		TotalSales:       total,
		TransactionCount: count,
		AverageSale:      avg,
		TotalDiscount:    discount,
	}, nil
}
