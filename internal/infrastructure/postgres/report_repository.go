package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de solo lectura sobre PostgreSQL.
// Corre fuera de transacción: los dashboards toleran lecturas
// eventualmente consistentes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary agrega las ventas cumplidas en [from, to].
func (r *ReportRepo) SalesSummary(from, to time.Time) (*repository.OrderSummary, error) {
	return r.summary(entity.OrderKindSalesOrder, entity.OrderStatusFulfilled, from, to)
}

// PurchasesSummary agrega compras y órdenes de compra recibidas en [from, to].
func (r *ReportRepo) PurchasesSummary(from, to time.Time) (*repository.OrderSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount_total), 0),
		       COALESCE(SUM(tax_total), 0),
		       COALESCE(SUM(total), 0)
		FROM orders
		WHERE kind IN ($1, $2) AND status = $3
		  AND effective_date >= $4 AND effective_date <= $5`
	var s repository.OrderSummary
	err := r.q.QueryRow(context.Background(), query,
		entity.OrderKindPurchase, entity.OrderKindPurchaseOrder, entity.OrderStatusReceived, from, to,
	).Scan(&s.Count, &s.Subtotal, &s.DiscountTotal, &s.TaxTotal, &s.Total)
	if err != nil {
		return nil, fmt.Errorf("purchases summary: %w", err)
	}
	return &s, nil
}

func (r *ReportRepo) summary(kind entity.OrderKind, status string, from, to time.Time) (*repository.OrderSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount_total), 0),
		       COALESCE(SUM(tax_total), 0),
		       COALESCE(SUM(total), 0)
		FROM orders
		WHERE kind = $1 AND status = $2
		  AND effective_date >= $3 AND effective_date <= $4`
	var s repository.OrderSummary
	err := r.q.QueryRow(context.Background(), query, kind, status, from, to).Scan(
		&s.Count, &s.Subtotal, &s.DiscountTotal, &s.TaxTotal, &s.Total,
	)
	if err != nil {
		return nil, fmt.Errorf("orders summary: %w", err)
	}
	return &s, nil
}

// TopPartsSold devuelve los repuestos con más unidades salidas por venta en el
// rango, sumando órdenes de venta y consumos de órdenes de servicio.
func (r *ReportRepo) TopPartsSold(from, to time.Time, limit int) ([]*repository.TopPart, error) {
	query := `
		SELECT p.id, p.sku, p.name, SUM(-m.quantity) AS qty
		FROM stock_movements m
		JOIN parts p ON p.id = m.part_id
		WHERE m.type IN ($1, $2)
		  AND m.created_at >= $3 AND m.created_at <= $4
		GROUP BY p.id, p.sku, p.name
		ORDER BY qty DESC
		LIMIT $5`
	rows, err := r.q.Query(context.Background(), query,
		entity.MovementTypeSalesOrder, entity.MovementTypeSale, from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top parts sold: %w", err)
	}
	defer rows.Close()

	var list []*repository.TopPart
	for rows.Next() {
		var t repository.TopPart
		if err := rows.Scan(&t.PartID, &t.SKU, &t.Name, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan top part: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
