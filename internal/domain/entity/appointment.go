package entity

import "time"

// Estados de cita.
const (
	AppointmentStatusScheduled  = "scheduled"
	AppointmentStatusInProgress = "in_progress"
	AppointmentStatusCompleted  = "completed"
	AppointmentStatusCancelled  = "cancelled"
)

// Appointment es una cita de servicio: vehículo + mecánico + franja horaria.
// Dos citas del mismo mecánico no pueden solaparse (intervalos semiabiertos
// [StartTime, EndTime); las canceladas no cuentan).
type Appointment struct {
	ID         string
	VehicleID  string
	MechanicID string
	StartTime  time.Time
	EndTime    time.Time
	Reason     string
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
}

// ValidAppointmentTransition valida el flujo scheduled -> in_progress -> completed,
// con cancelación posible desde cualquier estado no terminal.
func ValidAppointmentTransition(oldStatus, newStatus string) bool {
	if oldStatus == newStatus {
		return false
	}
	switch oldStatus {
	case AppointmentStatusScheduled:
		return newStatus == AppointmentStatusInProgress || newStatus == AppointmentStatusCancelled
	case AppointmentStatusInProgress:
		return newStatus == AppointmentStatusCompleted || newStatus == AppointmentStatusCancelled
	default:
		return false
	}
}
