package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// Duración permitida de una cita.
const (
	minDuration = 15 * time.Minute
	maxDuration = 12 * time.Hour
)

// UseCase agenda de citas: creación con verificación de solape por mecánico,
// reprogramación y transiciones de estado.
type UseCase struct {
	appointmentRepo repository.AppointmentRepository
	vehicleRepo     repository.VehicleRepository
	mechanicRepo    repository.MechanicRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	appointmentRepo repository.AppointmentRepository,
	vehicleRepo     repository.VehicleRepository,
	mechanicRepo    repository.MechanicRepository,
) *UseCase {
	return &UseCase{appointmentRepo: appointmentRepo, vehicleRepo: vehicleRepo, mechanicRepo: mechanicRepo}
}

// parseWindow interpreta y valida la franja horaria de la cita.
func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if d := end.Sub(start); d < minDuration || d > maxDuration {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return start, end, nil
}

// Create valida vehículo y mecánico, verifica que la franja no se solape con
// otra cita no cancelada del mismo mecánico y persiste la cita en scheduled.
func (uc *UseCase) Create(userID string, in dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	if in.VehicleID == "" || in.MechanicID == "" {
		return nil, domain.ErrInvalidInput
	}
	start, end, err := parseWindow(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	// Margen de 5 minutos para desfaces de reloj.
	if start.Before(time.Now().Add(-5 * time.Minute)) {
		return nil, domain.ErrInvalidInput
	}

	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	mechanic, err := uc.mechanicRepo.GetByID(in.MechanicID)
	if err != nil {
		return nil, err
	}
	if mechanic == nil || !mechanic.Active {
		return nil, domain.ErrNotFound
	}

	overlapping, err := uc.appointmentRepo.CountOverlapping(in.MechanicID, start, end, "")
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, domain.ErrScheduleConflict
	}

	now := time.Now()
	appointment := &entity.Appointment{
		ID:         uuid.New().String(),
		VehicleID:  in.VehicleID,
		MechanicID: in.MechanicID,
		StartTime:  start,
		EndTime:    end,
		Reason:     in.Reason,
		Status:     entity.AppointmentStatusScheduled,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  userID,
	}
	if err := uc.appointmentRepo.Create(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Reschedule mueve la franja de una cita en scheduled, verificando solape
// contra las demás citas del mecánico (la propia se excluye).
func (uc *UseCase) Reschedule(id string, in dto.RescheduleAppointmentRequest) (*entity.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrNotFound
	}
	if appointment.Status != entity.AppointmentStatusScheduled {
		return nil, domain.ErrInvalidTransition
	}
	start, end, err := parseWindow(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	overlapping, err := uc.appointmentRepo.CountOverlapping(appointment.MechanicID, start, end, appointment.ID)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, domain.ErrScheduleConflict
	}
	appointment.StartTime = start
	appointment.EndTime = end
	appointment.UpdatedAt = time.Now()
	if err := uc.appointmentRepo.Update(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Transition aplica el flujo scheduled -> in_progress -> completed | cancelled.
func (uc *UseCase) Transition(id, newStatus string) (*entity.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidAppointmentTransition(appointment.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	appointment.Status = newStatus
	appointment.UpdatedAt = time.Now()
	if err := uc.appointmentRepo.Update(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetByID obtiene una cita.
func (uc *UseCase) GetByID(id string) (*entity.Appointment, error) {
	return uc.appointmentRepo.GetByID(id)
}

// ListByMechanic lista la agenda de un mecánico en un rango.
func (uc *UseCase) ListByMechanic(mechanicID string, from, to time.Time) ([]*entity.Appointment, error) {
	return uc.appointmentRepo.ListByMechanic(mechanicID, from, to)
}

// ListByVehicle lista el historial de citas de un vehículo.
func (uc *UseCase) ListByVehicle(vehicleID string) ([]*entity.Appointment, error) {
	return uc.appointmentRepo.ListByVehicle(vehicleID)
}
