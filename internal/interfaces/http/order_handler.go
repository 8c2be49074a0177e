package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/orders"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
)

// OrderHandler maneja compras, órdenes de compra y órdenes de venta.
// El mismo handler sirve los tres grupos de rutas; el kind viene fijado
// al registrar la ruta.
type OrderHandler struct {
	uc    *orders.UseCase
	pdfUC *orders.PDFUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase, pdfUC *orders.PDFUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, pdfUC: pdfUC}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:             o.ID,
		Kind:           string(o.Kind),
		Number:         o.Number,
		CounterpartyID: o.CounterpartyID,
		Status:         o.Status,
		Subtotal:       o.Subtotal,
		DiscountTotal:  o.DiscountTotal,
		TaxTotal:       o.TaxTotal,
		Total:          o.Total,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if !o.EffectiveDate.IsZero() {
		t := o.EffectiveDate
		resp.EffectiveDate = &t
	}
	for _, d := range o.Details {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:            d.ID,
			PartID:        d.PartID,
			Quantity:      d.Quantity,
			UnitPrice:     d.UnitPrice,
			DiscountMode:  d.DiscountMode,
			DiscountValue: d.DiscountValue,
			Subtotal:      d.Subtotal,
			Total:         d.Total,
		})
	}
	return resp
}

// Create godoc
// @Summary      Crear orden (compra, orden de compra u orden de venta)
// @Description  La orden nace en "pending" sin efecto en stock. Los montos se
//
//	calculan en el servidor: descuentos de línea, descuento de orden
//	e impuestos, redondeando a unidades enteras.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "counterparty_id y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *OrderHandler) Create(kind entity.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		var in dto.CreateOrderRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		order, err := h.uc.Create(c.Context(), kind, userID, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
	}
}

// List godoc
// @Summary      Listar órdenes del tipo
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        limit   query  int     false  "máx. 100, por defecto 20"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/sales-orders [get]
func (h *OrderHandler) List(kind entity.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var page dto.PageRequest
		if err := c.QueryParser(&page); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
		}
		page.DefaultPage()
		list, err := h.uc.List(kind, c.Query("status"), page.Limit, page.Offset)
		if err != nil {
			return respondError(c, err)
		}
		out := make([]dto.OrderResponse, 0, len(list))
		for _, o := range list {
			out = append(out, toOrderResponse(o))
		}
		return c.JSON(out)
	}
}

// GetByID godoc
// @Summary      Obtener orden con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *OrderHandler) GetByID(kind entity.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := h.uc.GetByID(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if order == nil || order.Kind != kind {
			return respondError(c, domain.ErrNotFound)
		}
		return c.JSON(toOrderResponse(order))
	}
}

// Transition godoc
// @Summary      Transicionar el estado de la orden
// @Description  Entrar al estado de cumplimiento aplica las líneas al stock;
//
//	salir de él emite los movimientos de reversión. Todo dentro de
//	una sola transacción: o la orden completa o nada.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.TransitionOrderRequest  true  "status destino y effective_date opcional (RFC 3339)"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/status [patch]
func (h *OrderHandler) Transition(kind entity.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		var in dto.TransitionOrderRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		var effectiveDate *time.Time
		if in.EffectiveDate != "" {
			t, err := time.Parse(time.RFC3339, in.EffectiveDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_date inválida (RFC 3339)"})
			}
			effectiveDate = &t
		}
		order, err := h.uc.GetByID(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if order == nil || order.Kind != kind {
			return respondError(c, domain.ErrNotFound)
		}
		updated, err := h.uc.Transition(c.Context(), order.ID, in.Status, userID, effectiveDate)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toOrderResponse(updated))
	}
}

// Invoice godoc
// @Summary      Descargar la factura PDF de una orden de venta cumplida
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden de venta"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.GenerateSalesInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
