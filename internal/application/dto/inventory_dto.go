package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements (entradas y salidas manuales).
type RegisterMovementRequest struct {
	PartID   string `json:"part_id"`
	Type     string `json:"type"` // in | out
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// MovementResponse fila del ledger en respuestas.
type MovementResponse struct {
	ID          string    `json:"id"`
	PartID      string    `json:"part_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	BeforeStock int64     `json:"before_stock"`
	AfterStock  int64     `json:"after_stock"`
	SupplierID  string    `json:"supplier_id,omitempty"`
	CustomerID  string    `json:"customer_id,omitempty"`
	OrderKind   string    `json:"order_kind,omitempty"`
	OrderID     string    `json:"order_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MinimalStock int64           `json:"minimal_stock"`
	Price        decimal.Decimal `json:"price"`
}

// UpdatePartRequest body para PUT /api/parts/:id. Stock no es editable aquí.
type UpdatePartRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MinimalStock int64           `json:"minimal_stock"`
	Price        decimal.Decimal `json:"price"`
}

// PartResponse repuesto en respuestas.
type PartResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Stock        int64           `json:"stock"`
	MinimalStock int64           `json:"minimal_stock"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
