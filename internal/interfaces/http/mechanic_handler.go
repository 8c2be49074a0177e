package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/usecase"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
)

// MechanicHandler maneja mecánicos (protegido; escritura solo admin).
type MechanicHandler struct {
	uc *usecase.MechanicUseCase
}

// NewMechanicHandler construye el handler.
func NewMechanicHandler(uc *usecase.MechanicUseCase) *MechanicHandler {
	return &MechanicHandler{uc: uc}
}

func toMechanicResponse(m *entity.Mechanic) dto.MechanicResponse {
	return dto.MechanicResponse{
		ID:        m.ID,
		Name:      m.Name,
		Specialty: m.Specialty,
		Phone:     m.Phone,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear mecánico
// @Tags         mechanics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMechanicRequest  true  "name obligatorio"
// @Success      201   {object}  dto.MechanicResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/mechanics [post]
func (h *MechanicHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMechanicRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mechanic, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMechanicResponse(mechanic))
}

// List godoc
// @Summary      Listar mecánicos
// @Tags         mechanics
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "true = solo activos"
// @Success      200  {array}  dto.MechanicResponse
// @Router       /api/mechanics [get]
func (h *MechanicHandler) List(c *fiber.Ctx) error {
	onlyActive := c.QueryBool("active", false)
	mechanics, err := h.uc.List(onlyActive)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MechanicResponse, 0, len(mechanics))
	for _, m := range mechanics {
		out = append(out, toMechanicResponse(m))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mecánico
// @Tags         mechanics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del mecánico"
// @Success      200  {object}  dto.MechanicResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mechanics/{id} [get]
func (h *MechanicHandler) GetByID(c *fiber.Ctx) error {
	mechanic, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if mechanic == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toMechanicResponse(mechanic))
}

// SetActive godoc
// @Summary      Activar o desactivar mecánico
// @Description  Los mecánicos inactivos no pueden recibir citas nuevas.
// @Tags         mechanics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del mecánico"
// @Param        body  body  object  true  `{"active": true}`
// @Success      200   {object}  dto.MechanicResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/mechanics/{id}/active [patch]
func (h *MechanicHandler) SetActive(c *fiber.Ctx) error {
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mechanic, err := h.uc.SetActive(c.Params("id"), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMechanicResponse(mechanic))
}
