package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distingue las tres variantes de orden. Las tres comparten la misma
// máquina de estados con el signo invertido: las compras suman stock al
// cumplirse, las ventas lo restan.
type OrderKind string

const (
	OrderKindPurchase      OrderKind = "purchase"       // compra directa
	OrderKindPurchaseOrder OrderKind = "purchase_order" // orden de compra con aprobación
	OrderKindSalesOrder    OrderKind = "sales_order"    // orden de venta
)

// Estados de orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusOrdered   = "ordered" // solo purchase_order, sin efecto en stock
	OrderStatusReceived  = "received"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusCancelled = "cancelled"
)

// Valid indica si el kind es uno de los tres soportados.
func (k OrderKind) Valid() bool {
	return k == OrderKindPurchase || k == OrderKindPurchaseOrder || k == OrderKindSalesOrder
}

// Direction devuelve +1 si el cumplimiento suma stock (compras) o -1 si lo resta (ventas).
func (k OrderKind) Direction() int64 {
	if k == OrderKindSalesOrder {
		return -1
	}
	return 1
}

// FulfillmentStatus es el estado cuya entrada aplica stock y cuya salida lo revierte.
func (k OrderKind) FulfillmentStatus() string {
	if k == OrderKindSalesOrder {
		return OrderStatusFulfilled
	}
	return OrderStatusReceived
}

// MovementType es el tipo de movimiento de ledger emitido al cumplir la orden.
func (k OrderKind) MovementType() string {
	switch k {
	case OrderKindPurchase:
		return MovementTypePurchase
	case OrderKindPurchaseOrder:
		return MovementTypePurchaseOrderReceived
	default:
		return MovementTypeSalesOrder
	}
}

// ReversalType es el tipo de movimiento emitido al salir del estado de cumplimiento.
func (k OrderKind) ReversalType() string {
	switch k {
	case OrderKindPurchase:
		return MovementTypePurchaseReversal
	case OrderKindPurchaseOrder:
		return MovementTypePurchaseOrderReversal
	default:
		return MovementTypeSalesOrderReversal
	}
}

// Statuses devuelve los estados válidos para el kind.
func (k OrderKind) Statuses() []string {
	if k == OrderKindPurchaseOrder {
		return []string{OrderStatusPending, OrderStatusOrdered, OrderStatusReceived, OrderStatusCancelled}
	}
	return []string{OrderStatusPending, k.FulfillmentStatus(), OrderStatusCancelled}
}

// ValidTransition valida la transición de estado para el kind.
// pending -> {ordered (solo purchase_order), cumplimiento, cancelled}
// ordered -> {received, cancelled}
// cumplimiento -> {cancelled} (reversión)
// cancelled es terminal.
func (k OrderKind) ValidTransition(oldStatus, newStatus string) bool {
	if oldStatus == newStatus {
		return false
	}
	if !contains(k.Statuses(), newStatus) {
		return false
	}
	switch oldStatus {
	case OrderStatusPending:
		return true
	case OrderStatusOrdered:
		return newStatus == OrderStatusReceived || newStatus == OrderStatusCancelled
	case k.FulfillmentStatus():
		// Salir del cumplimiento es una reversión; permitido hacia cualquier otro estado del kind.
		return true
	default:
		return false
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Order es la cabecera de una compra, orden de compra u orden de venta.
// CounterpartyID es el proveedor (compras) o el cliente (ventas).
// Las líneas son inmutables una vez creada la orden.
type Order struct {
	ID             string
	Kind           OrderKind
	Number         string // consecutivo legible, ej. OV-000123
	CounterpartyID string
	Status         string
	Subtotal       decimal.Decimal // suma de totales de línea
	DiscountMode   string          // none | percent | fixed
	DiscountValue  decimal.Decimal
	DiscountTotal  decimal.Decimal // monto descontado a nivel de orden
	TaxMode        string
	TaxValue       decimal.Decimal
	TaxTotal       decimal.Decimal
	Total          decimal.Decimal // gran total a pagar
	Notes          string
	EffectiveDate  time.Time // fecha contable del cumplimiento
	Details        []OrderDetail
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}

// OrderDetail es una línea de orden: repuesto, cantidad y montos calculados.
type OrderDetail struct {
	ID            string
	OrderID       string
	PartID        string
	Quantity      int64
	UnitPrice     decimal.Decimal
	DiscountMode  string
	DiscountValue decimal.Decimal
	Subtotal      decimal.Decimal // Quantity * UnitPrice
	Total         decimal.Decimal // Subtotal menos descuento de línea
}
