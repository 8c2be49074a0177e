package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

var _ repository.MechanicRepository = (*MechanicRepo)(nil)

// MechanicRepo implementación de MechanicRepository sobre PostgreSQL.
type MechanicRepo struct {
	q Querier
}

// NewMechanicRepository construye el adaptador de mecánicos.
func NewMechanicRepository(q Querier) *MechanicRepo {
	return &MechanicRepo{q: q}
}

const mechanicColumns = `id, name, specialty, phone, active, created_at, updated_at`

// Create persiste un mecánico nuevo.
func (r *MechanicRepo) Create(mechanic *entity.Mechanic) error {
	query := `
		INSERT INTO mechanics (` + mechanicColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		mechanic.ID, mechanic.Name, mechanic.Specialty, mechanic.Phone,
		mechanic.Active, mechanic.CreatedAt, mechanic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create mechanic: %w", err)
	}
	return nil
}

// GetByID obtiene un mecánico por ID.
func (r *MechanicRepo) GetByID(id string) (*entity.Mechanic, error) {
	query := `SELECT ` + mechanicColumns + ` FROM mechanics WHERE id = $1`
	var m entity.Mechanic
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Specialty, &m.Phone, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mechanic: %w", err)
	}
	return &m, nil
}

// List lista mecánicos; con onlyActive filtra los inactivos.
func (r *MechanicRepo) List(onlyActive bool) ([]*entity.Mechanic, error) {
	query := `SELECT ` + mechanicColumns + ` FROM mechanics`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list mechanics: %w", err)
	}
	defer rows.Close()

	var list []*entity.Mechanic
	for rows.Next() {
		var m entity.Mechanic
		if err := rows.Scan(&m.ID, &m.Name, &m.Specialty, &m.Phone, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mechanic: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza los datos y el estado activo del mecánico.
func (r *MechanicRepo) Update(mechanic *entity.Mechanic) error {
	query := `
		UPDATE mechanics SET name = $2, specialty = $3, phone = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		mechanic.ID, mechanic.Name, mechanic.Specialty, mechanic.Phone, mechanic.Active, mechanic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update mechanic: %w", err)
	}
	return nil
}
