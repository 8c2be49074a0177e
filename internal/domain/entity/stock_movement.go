package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeIn                    = "in"  // entrada manual
	MovementTypeOut                   = "out" // salida manual
	MovementTypePurchase              = "purchase"
	MovementTypePurchaseReversal      = "purchase_reversal"
	MovementTypePurchaseOrderReceived = "purchase_order_received"
	MovementTypePurchaseOrderReversal = "purchase_order_reversal"
	MovementTypeSale                  = "sale" // consumo de repuestos al completar una orden de servicio
	MovementTypeSalesOrder            = "sales_order"
	MovementTypeSalesOrderReversal    = "sales_order_reversal"
)

// StockMovement es una fila inmutable del libro de movimientos (append-only).
// Invariante: AfterStock == BeforeStock + Quantity, y AfterStock coincide con
// Part.Stock en el instante de creación (el repuesto se lee FOR UPDATE en la misma tx).
type StockMovement struct {
	ID          string
	PartID      string
	Type        string // uno de los MovementType*
	Quantity    int64  // con signo: positivo entra, negativo sale
	BeforeStock int64
	AfterStock  int64
	SupplierID  string // opcional, compras
	CustomerID  string // opcional, ventas
	OrderKind   string // opcional: referencia polimórfica a la orden origen
	OrderID     string
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
