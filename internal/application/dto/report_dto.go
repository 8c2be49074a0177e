package dto

import "github.com/shopspring/decimal"

// OrderSummaryResponse agregado de órdenes cumplidas en un rango.
type OrderSummaryResponse struct {
	Count         int64           `json:"count"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	Total         decimal.Decimal `json:"total"`
}

// TopPartResponse repuesto más vendido en el rango.
type TopPartResponse struct {
	PartID   string `json:"part_id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// LowStockPartResponse repuesto en o por debajo de su stock mínimo.
type LowStockPartResponse struct {
	PartID       string `json:"part_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int64  `json:"stock"`
	MinimalStock int64  `json:"minimal_stock"`
}
