package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador de citas.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `id, vehicle_id, mechanic_id, start_time, end_time, reason, status, notes, created_at, updated_at, created_by`

// Create persiste una cita nueva.
func (r *AppointmentRepo) Create(appointment *entity.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		appointment.ID, appointment.VehicleID, appointment.MechanicID,
		appointment.StartTime, appointment.EndTime, appointment.Reason,
		appointment.Status, appointment.Notes,
		appointment.CreatedAt, appointment.UpdatedAt, appointment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var a entity.Appointment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.VehicleID, &a.MechanicID, &a.StartTime, &a.EndTime,
		&a.Reason, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &a.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// ListByMechanic lista las citas del mecánico cuyo inicio cae en [from, to).
func (r *AppointmentRepo) ListByMechanic(mechanicID string, from, to time.Time) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE mechanic_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`
	rows, err := r.q.Query(context.Background(), query, mechanicID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments by mechanic: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// ListByVehicle lista el historial de citas de un vehículo.
func (r *AppointmentRepo) ListByVehicle(vehicleID string) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE vehicle_id = $1 ORDER BY start_time DESC`
	rows, err := r.q.Query(context.Background(), query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by vehicle: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]*entity.Appointment, error) {
	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.VehicleID, &a.MechanicID, &a.StartTime, &a.EndTime,
			&a.Reason, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza franja, motivo, estado y notas de la cita.
func (r *AppointmentRepo) Update(appointment *entity.Appointment) error {
	query := `
		UPDATE appointments SET start_time = $2, end_time = $3, reason = $4, status = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		appointment.ID, appointment.StartTime, appointment.EndTime,
		appointment.Reason, appointment.Status, appointment.Notes, appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// CountOverlapping cuenta citas no canceladas del mecánico que se solapan con
// [start, end). Intervalos semiabiertos: tocar extremos no es solape.
func (r *AppointmentRepo) CountOverlapping(mechanicID string, start, end time.Time, excludeID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE mechanic_id = $1
		  AND status <> $2
		  AND start_time < $4
		  AND end_time > $3
		  AND ($5 = '' OR id <> $5)`
	var count int
	err := r.q.QueryRow(context.Background(), query,
		mechanicID, entity.AppointmentStatusCancelled, start, end, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overlapping appointments: %w", err)
	}
	return count, nil
}
