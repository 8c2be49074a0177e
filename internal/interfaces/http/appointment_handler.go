package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/scheduling"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
)

// AppointmentHandler maneja la agenda de citas (protegido).
type AppointmentHandler struct {
	uc *scheduling.UseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *scheduling.UseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

func toAppointmentResponse(a *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:         a.ID,
		VehicleID:  a.VehicleID,
		MechanicID: a.MechanicID,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Reason:     a.Reason,
		Status:     a.Status,
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// Create godoc
// @Summary      Agendar cita
// @Description  Rechaza con 409 si el mecánico ya tiene una cita que se solape
//
//	con la franja pedida (intervalos semiabiertos: tocar extremos no
//	es solape).
//
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "vehicle_id, mechanic_id, start_time, end_time (RFC 3339)"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	appointment, err := h.uc.Create(userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAppointmentResponse(appointment))
}

// GetByID godoc
// @Summary      Obtener cita
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	appointment, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if appointment == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toAppointmentResponse(appointment))
}

// Reschedule godoc
// @Summary      Reprogramar cita
// @Description  Solo citas en "scheduled". La validación de solape excluye la
//
//	propia cita.
//
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.RescheduleAppointmentRequest  true  "nueva franja (RFC 3339)"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/reschedule [patch]
func (h *AppointmentHandler) Reschedule(c *fiber.Ctx) error {
	var in dto.RescheduleAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	appointment, err := h.uc.Reschedule(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(appointment))
}

// Transition godoc
// @Summary      Transicionar el estado de la cita
// @Description  scheduled → in_progress → completed, con cancelación desde
//
//	cualquier estado no terminal.
//
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.TransitionAppointmentRequest  true  "status destino"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	appointment, err := h.uc.Transition(c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(appointment))
}

// ListByMechanic godoc
// @Summary      Agenda de un mecánico en un rango
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del mecánico"
// @Param        from  query  string  true   "RFC 3339"
// @Param        to    query  string  true   "RFC 3339"
// @Success      200  {array}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/mechanics/{id}/appointments [get]
func (h *AppointmentHandler) ListByMechanic(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	appointments, err := h.uc.ListByMechanic(c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toAppointmentResponse(a))
	}
	return c.JSON(out)
}

// ListByVehicle godoc
// @Summary      Historial de citas de un vehículo
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vehículo"
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/vehicles/{id}/appointments [get]
func (h *AppointmentHandler) ListByVehicle(c *fiber.Ctx) error {
	appointments, err := h.uc.ListByVehicle(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toAppointmentResponse(a))
	}
	return c.JSON(out)
}
