package repository

import (
	"time"

	"github.com/jcastano/taller-api/internal/domain/entity"
)

// AppointmentRepository persistencia de citas.
// CountOverlapping cuenta citas no canceladas del mecánico que se solapan con
// [start, end); excludeID permite excluir la propia cita al reprogramar.
type AppointmentRepository interface {
	Create(appointment *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	ListByMechanic(mechanicID string, from, to time.Time) ([]*entity.Appointment, error)
	ListByVehicle(vehicleID string) ([]*entity.Appointment, error)
	Update(appointment *entity.Appointment) error
	CountOverlapping(mechanicID string, start, end time.Time, excludeID string) (int, error)
}
