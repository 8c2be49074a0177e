package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/inventory"
	"github.com/jcastano/taller-api/internal/application/reporting"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// ReportHandler maneja reportes y exportaciones (protegido, solo admin y recepción).
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseReportRange lee from/to de la query. Acepta YYYY-MM-DD o RFC 3339;
// sin from se usa el inicio del mes actual, sin to el instante actual.
func parseReportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if s := c.Query("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toSummaryResponse(s *repository.OrderSummary) dto.OrderSummaryResponse {
	return dto.OrderSummaryResponse{
		Count:         s.Count,
		Subtotal:      s.Subtotal,
		DiscountTotal: s.DiscountTotal,
		TaxTotal:      s.TaxTotal,
		Total:         s.Total,
	}
}

// SalesSummary godoc
// @Summary      Resumen de ventas cumplidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD o RFC 3339; por defecto inicio del mes"
// @Param        to    query  string  false  "YYYY-MM-DD o RFC 3339; por defecto ahora"
// @Success      200  {object}  dto.OrderSummaryResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	from, to, err := parseReportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	summary, err := h.uc.SalesSummary(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSummaryResponse(summary))
}

// PurchasesSummary godoc
// @Summary      Resumen de compras recibidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD o RFC 3339; por defecto inicio del mes"
// @Param        to    query  string  false  "YYYY-MM-DD o RFC 3339; por defecto ahora"
// @Success      200  {object}  dto.OrderSummaryResponse
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) PurchasesSummary(c *fiber.Ctx) error {
	from, to, err := parseReportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	summary, err := h.uc.PurchasesSummary(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSummaryResponse(summary))
}

// TopParts godoc
// @Summary      Repuestos más vendidos en el rango
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD o RFC 3339"
// @Param        to     query  string  false  "YYYY-MM-DD o RFC 3339"
// @Param        limit  query  int     false  "por defecto 10"
// @Success      200  {array}  dto.TopPartResponse
// @Router       /api/reports/top-parts [get]
func (h *ReportHandler) TopParts(c *fiber.Ctx) error {
	from, to, err := parseReportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	limit := c.QueryInt("limit", 10)
	parts, err := h.uc.TopPartsSold(from, to, limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TopPartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.TopPartResponse{
			PartID:   p.PartID,
			SKU:      p.SKU,
			Name:     p.Name,
			Quantity: p.Quantity,
		})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Repuestos en o por debajo del stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockPartResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	parts, err := h.uc.LowStockParts()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LowStockPartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.LowStockPartResponse{
			PartID:       p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			MinimalStock: p.MinimalStock,
		})
	}
	return c.JSON(out)
}

// ExportMovementsCSV godoc
// @Summary      Exportar movimientos del ledger a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        part_id  query  string  false  "filtrar por repuesto"
// @Param        type     query  string  false  "filtrar por tipo"
// @Param        from     query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        to       query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.csv [get]
func (h *ReportHandler) ExportMovementsCSV(c *fiber.Ctx) error {
	from, to, err := inventory.ParseMovementRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	filter := repository.MovementFilter{
		PartID: c.Query("part_id"),
		Type:   c.Query("type"),
		From:   from,
		To:     to,
		Limit:  10000,
		Offset: 0,
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.csv"`)
	if err := h.uc.ExportMovementsCSV(c.Response().BodyWriter(), filter); err != nil {
		return respondError(c, err)
	}
	return nil
}
