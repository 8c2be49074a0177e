package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/inventory"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// InventoryHandler maneja el ledger de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.RecordMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RecordMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		PartID:      m.PartID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		BeforeStock: m.BeforeStock,
		AfterStock:  m.AfterStock,
		SupplierID:  m.SupplierID,
		CustomerID:  m.CustomerID,
		OrderKind:   m.OrderKind,
		OrderID:     m.OrderID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Description  Entradas ("in") y salidas ("out") manuales. Las salidas que
//
//	dejarían el stock negativo se rechazan con 409.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "part_id, type (in|out), quantity > 0"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RecordManualMovement(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos del ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        part_id  query  string  false  "filtrar por repuesto"
// @Param        type     query  string  false  "filtrar por tipo de movimiento"
// @Param        from     query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        to       query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        limit    query  int     false  "máx. 100, por defecto 20"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()

	from, to, err := inventory.ParseMovementRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "rango de fechas inválido"})
	}
	filter := repository.MovementFilter{
		PartID: c.Query("part_id"),
		Type:   c.Query("type"),
		From:   from,
		To:     to,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	movements, err := h.uc.ListMovements(filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}
