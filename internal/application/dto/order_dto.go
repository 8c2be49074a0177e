package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderLineRequest línea de una orden nueva.
type CreateOrderLineRequest struct {
	PartID        string          `json:"part_id"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"` // ventas: 0 = usar precio del repuesto
	DiscountMode  string          `json:"discount_mode,omitempty"`
	DiscountValue decimal.Decimal `json:"discount_value,omitempty"`
}

// CreateOrderRequest body para POST /api/{purchases,purchase-orders,sales-orders}.
type CreateOrderRequest struct {
	CounterpartyID string                   `json:"counterparty_id"` // proveedor (compras) o cliente (ventas)
	Lines          []CreateOrderLineRequest `json:"lines"`
	DiscountMode   string                   `json:"discount_mode,omitempty"`
	DiscountValue  decimal.Decimal          `json:"discount_value,omitempty"`
	TaxMode        string                   `json:"tax_mode,omitempty"`
	TaxValue       decimal.Decimal          `json:"tax_value,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
}

// TransitionOrderRequest body para PATCH .../:id/status.
type TransitionOrderRequest struct {
	Status        string `json:"status"`
	EffectiveDate string `json:"effective_date,omitempty"` // RFC 3339; vacío = ahora
}

// OrderLineResponse línea de orden en respuestas.
type OrderLineResponse struct {
	ID            string          `json:"id"`
	PartID        string          `json:"part_id"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountMode  string          `json:"discount_mode"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// OrderResponse orden en respuestas.
type OrderResponse struct {
	ID             string              `json:"id"`
	Kind           string              `json:"kind"`
	Number         string              `json:"number"`
	CounterpartyID string              `json:"counterparty_id"`
	Status         string              `json:"status"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountTotal  decimal.Decimal     `json:"discount_total"`
	TaxTotal       decimal.Decimal     `json:"tax_total"`
	Total          decimal.Decimal     `json:"total"`
	Notes          string              `json:"notes,omitempty"`
	EffectiveDate  *time.Time          `json:"effective_date,omitempty"`
	Lines          []OrderLineResponse `json:"lines"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
