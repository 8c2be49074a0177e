package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de servicio.
const (
	ServiceOrderStatusOpen      = "open"
	ServiceOrderStatusCompleted = "completed"
	ServiceOrderStatusCancelled = "cancelled"
)

// ServiceOrder es el registro del trabajo sobre un vehículo, normalmente
// originado en una cita. Al completarse consume los repuestos de sus líneas
// (movimientos tipo "sale"); completed y cancelled son terminales.
type ServiceOrder struct {
	ID            string
	AppointmentID string // opcional
	VehicleID     string
	MechanicID    string
	Description   string
	LaborCost     decimal.Decimal
	PartsCost     decimal.Decimal // calculado al completar
	Total         decimal.Decimal
	Status        string
	Parts         []ServiceOrderPart
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}

// ServiceOrderPart es un repuesto a consumir por la orden de servicio.
type ServiceOrderPart struct {
	ID             string
	ServiceOrderID string
	PartID         string
	Quantity       int64
	UnitPrice      decimal.Decimal
	Total          decimal.Decimal
}
