package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary agregado de órdenes cumplidas en un rango de fechas.
type OrderSummary struct {
	Count         int64
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
}

// TopPart repuesto más movido en el rango.
type TopPart struct {
	PartID   string
	SKU      string
	Name     string
	Quantity int64
}

// ReportRepository agregaciones de solo lectura para reportes.
// No requiere serialización con los escritores: lecturas eventualmente
// consistentes son aceptables para dashboards.
type ReportRepository interface {
	SalesSummary(from, to time.Time) (*OrderSummary, error)
	PurchasesSummary(from, to time.Time) (*OrderSummary, error)
	TopPartsSold(from, to time.Time, limit int) ([]*TopPart, error)
}
