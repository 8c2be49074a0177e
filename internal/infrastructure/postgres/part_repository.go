package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, sku, name, description, stock, minimal_stock, price, cost, created_at, updated_at`

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Stock, &p.MinimalStock, &p.Price, &p.Cost, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan part: %w", err)
	}
	return &p, nil
}

// Create persiste un repuesto nuevo.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (id, sku, name, description, stock, minimal_stock, price, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.SKU, part.Name, part.Description, part.Stock,
		part.MinimalStock, part.Price, part.Cost, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`
	return scanPart(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKU obtiene un repuesto por SKU.
func (r *PartRepo) GetBySKU(sku string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE sku = $1`
	return scanPart(r.q.QueryRow(context.Background(), query, sku))
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE)
// para serializar las mutaciones de stock dentro de la tx del caller.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1 FOR UPDATE`
	return scanPart(r.q.QueryRow(context.Background(), query, id))
}

// List lista repuestos paginados por SKU.
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	return collectParts(rows)
}

// ListLowStock lista repuestos en o por debajo de su stock mínimo.
func (r *PartRepo) ListLowStock() ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE stock <= minimal_stock ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectParts(rows)
}

func collectParts(rows pgx.Rows) ([]*entity.Part, error) {
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Stock, &p.MinimalStock, &p.Price, &p.Cost, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del repuesto (no Stock ni Cost).
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts SET name = $2, description = $3, minimal_stock = $4, price = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.Name, part.Description, part.MinimalStock, part.Price, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo stock. Solo debe llamarse con la fila
// bloqueada por GetForUpdate en la misma transacción.
func (r *PartRepo) UpdateStock(id string, stock int64) error {
	query := `UPDATE parts SET stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdateCost actualiza el costo promedio ponderado.
func (r *PartRepo) UpdateCost(id string, cost decimal.Decimal) error {
	query := `UPDATE parts SET cost = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, cost)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	return nil
}
