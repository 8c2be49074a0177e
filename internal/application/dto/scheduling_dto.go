package dto

import "time"

// CreateAppointmentRequest body para POST /api/appointments.
// Fechas en RFC 3339.
type CreateAppointmentRequest struct {
	VehicleID  string `json:"vehicle_id"`
	MechanicID string `json:"mechanic_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// RescheduleAppointmentRequest body para PATCH /api/appointments/:id/reschedule.
type RescheduleAppointmentRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TransitionAppointmentRequest body para PATCH /api/appointments/:id/status.
type TransitionAppointmentRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse cita en respuestas.
type AppointmentResponse struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicle_id"`
	MechanicID string    `json:"mechanic_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
