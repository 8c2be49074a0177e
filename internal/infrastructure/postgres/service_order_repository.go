package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo implementación de ServiceOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador de órdenes de servicio.
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

const serviceOrderColumns = `id, appointment_id, vehicle_id, mechanic_id, description,
	labor_cost, parts_cost, total, status, created_at, updated_at, created_by`

// Create inserta la orden de servicio con sus líneas de repuestos.
func (r *ServiceOrderRepo) Create(order *entity.ServiceOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO service_orders (` + serviceOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		order.ID, nullable(order.AppointmentID), order.VehicleID, order.MechanicID, order.Description,
		order.LaborCost, order.PartsCost, order.Total, order.Status,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create service order: %w", err)
	}

	partQuery := `
		INSERT INTO service_order_parts (id, service_order_id, part_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range order.Parts {
		p := &order.Parts[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.ServiceOrderID = order.ID
		if _, err := r.q.Exec(ctx, partQuery,
			p.ID, p.ServiceOrderID, p.PartID, p.Quantity, p.UnitPrice, p.Total,
		); err != nil {
			return fmt.Errorf("create service order part: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden de servicio con sus líneas.
func (r *ServiceOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE id = $1`
	var o entity.ServiceOrder
	var appointmentID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &appointmentID, &o.VehicleID, &o.MechanicID, &o.Description,
		&o.LaborCost, &o.PartsCost, &o.Total, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	o.AppointmentID = deref(appointmentID)

	partQuery := `
		SELECT id, service_order_id, part_id, quantity, unit_price, total
		FROM service_order_parts WHERE service_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, partQuery, o.ID)
	if err != nil {
		return nil, fmt.Errorf("load service order parts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.ServiceOrderPart
		if err := rows.Scan(&p.ID, &p.ServiceOrderID, &p.PartID, &p.Quantity, &p.UnitPrice, &p.Total); err != nil {
			return nil, fmt.Errorf("scan service order part: %w", err)
		}
		o.Parts = append(o.Parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// List lista órdenes de servicio, opcionalmente por estado, sin líneas.
func (r *ServiceOrderRepo) List(status string, limit, offset int) ([]*entity.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE 1=1`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.ServiceOrder
	for rows.Next() {
		var o entity.ServiceOrder
		var appointmentID *string
		if err := rows.Scan(&o.ID, &appointmentID, &o.VehicleID, &o.MechanicID, &o.Description,
			&o.LaborCost, &o.PartsCost, &o.Total, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		o.AppointmentID = deref(appointmentID)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el nuevo estado.
func (r *ServiceOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE service_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update service order status: %w", err)
	}
	return nil
}

// UpdateTotals escribe los totales calculados al completar la orden.
func (r *ServiceOrderRepo) UpdateTotals(order *entity.ServiceOrder) error {
	query := `UPDATE service_orders SET parts_cost = $2, total = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, order.ID, order.PartsCost, order.Total)
	if err != nil {
		return fmt.Errorf("update service order totals: %w", err)
	}
	return nil
}
