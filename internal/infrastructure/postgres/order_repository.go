package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Una sola tabla para compras, órdenes de compra y ventas, discriminada por kind.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, kind, number, counterparty_id, status, subtotal,
	discount_mode, discount_value, discount_total, tax_mode, tax_value, tax_total,
	total, notes, effective_date, created_at, updated_at, created_by`

// Create inserta la cabecera y sus líneas. Debe llamarse dentro de una tx.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Kind, order.Number, order.CounterpartyID, order.Status, order.Subtotal,
		order.DiscountMode, order.DiscountValue, order.DiscountTotal,
		order.TaxMode, order.TaxValue, order.TaxTotal,
		order.Total, order.Notes, order.EffectiveDate, order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	detailQuery := `
		INSERT INTO order_details (id, order_id, part_id, quantity, unit_price,
			discount_mode, discount_value, subtotal, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range order.Details {
		d := &order.Details[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.OrderID = order.ID
		if _, err := r.q.Exec(ctx, detailQuery,
			d.ID, d.OrderID, d.PartID, d.Quantity, d.UnitPrice,
			d.DiscountMode, d.DiscountValue, d.Subtotal, d.Total,
		); err != nil {
			return fmt.Errorf("create order detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Kind, &o.Number, &o.CounterpartyID, &o.Status, &o.Subtotal,
		&o.DiscountMode, &o.DiscountValue, &o.DiscountTotal,
		&o.TaxMode, &o.TaxValue, &o.TaxTotal,
		&o.Total, &o.Notes, &o.EffectiveDate, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	details, err := r.loadDetails(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Details = details
	return &o, nil
}

func (r *OrderRepo) loadDetails(ctx context.Context, orderID string) ([]entity.OrderDetail, error) {
	query := `
		SELECT id, order_id, part_id, quantity, unit_price, discount_mode, discount_value, subtotal, total
		FROM order_details WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order details: %w", err)
	}
	defer rows.Close()

	var details []entity.OrderDetail
	for rows.Next() {
		var d entity.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.PartID, &d.Quantity, &d.UnitPrice,
			&d.DiscountMode, &d.DiscountValue, &d.Subtotal, &d.Total); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// List lista órdenes del kind, opcionalmente filtradas por estado, sin líneas.
func (r *OrderRepo) List(kind entity.OrderKind, status string, limit, offset int) ([]*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders WHERE kind = $1`
	args := []any{kind}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.Kind, &o.Number, &o.CounterpartyID, &o.Status, &o.Subtotal,
			&o.DiscountMode, &o.DiscountValue, &o.DiscountTotal,
			&o.TaxMode, &o.TaxValue, &o.TaxTotal,
			&o.Total, &o.Notes, &o.EffectiveDate, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el nuevo estado y la fecha contable de la transición.
func (r *OrderRepo) UpdateStatus(id, status string, effectiveDate time.Time) error {
	query := `UPDATE orders SET status = $2, effective_date = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, effectiveDate)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// NextNumber devuelve el siguiente consecutivo legible del kind, ej. OV-000042.
// Usa un contador por kind con upsert; la fila del contador queda bloqueada
// hasta el commit, lo que garantiza consecutivos sin huecos dentro del kind.
func (r *OrderRepo) NextNumber(kind entity.OrderKind) (string, error) {
	query := `
		INSERT INTO order_counters (kind, last_value) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET last_value = order_counters.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, kind).Scan(&n); err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	return fmt.Sprintf("%s-%06d", numberPrefix(kind), n), nil
}

func numberPrefix(kind entity.OrderKind) string {
	switch kind {
	case entity.OrderKindPurchase:
		return "CP"
	case entity.OrderKindPurchaseOrder:
		return "OC"
	default:
		return "OV"
	}
}
