package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/usecase"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
)

// ServiceOrderHandler maneja órdenes de servicio (protegido).
type ServiceOrderHandler struct {
	uc *usecase.ServiceOrderUseCase
}

// NewServiceOrderHandler construye el handler.
func NewServiceOrderHandler(uc *usecase.ServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{uc: uc}
}

func toServiceOrderResponse(o *entity.ServiceOrder) dto.ServiceOrderResponse {
	resp := dto.ServiceOrderResponse{
		ID:            o.ID,
		AppointmentID: o.AppointmentID,
		VehicleID:     o.VehicleID,
		MechanicID:    o.MechanicID,
		Description:   o.Description,
		LaborCost:     o.LaborCost,
		PartsCost:     o.PartsCost,
		Total:         o.Total,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, p := range o.Parts {
		resp.Parts = append(resp.Parts, dto.ServiceOrderPartResponse{
			ID:        p.ID,
			PartID:    p.PartID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Total:     p.Total,
		})
	}
	return resp
}

// Create godoc
// @Summary      Abrir orden de servicio
// @Description  Los repuestos declarados no se descuentan del stock al crear;
//
//	el consumo ocurre al completar la orden.
//
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceOrderRequest  true  "vehicle_id, mechanic_id, description, labor_cost, parts"
// @Success      201   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-orders [post]
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateServiceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toServiceOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "open | completed | cancelled"
// @Param        limit   query  int     false  "máx. 100, por defecto 20"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ServiceOrderResponse
// @Router       /api/service-orders [get]
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toServiceOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de servicio"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id} [get]
func (h *ServiceOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toServiceOrderResponse(order))
}

// Complete godoc
// @Summary      Completar orden de servicio
// @Description  Consume los repuestos de la orden (movimientos "sale") y fija
//
//	los totales. Todo dentro de una sola transacción; si algún
//	repuesto no alcanza, nada se descuenta.
//
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de servicio"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/complete [post]
func (h *ServiceOrderHandler) Complete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	order, err := h.uc.Complete(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toServiceOrderResponse(order))
}

// Cancel godoc
// @Summary      Cancelar orden de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de servicio"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/cancel [post]
func (h *ServiceOrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toServiceOrderResponse(order))
}
