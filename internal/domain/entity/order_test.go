package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcastano/taller-api/internal/domain/entity"
)

func TestOrderKind_Direction(t *testing.T) {
	assert.Equal(t, int64(1), entity.OrderKindPurchase.Direction())
	assert.Equal(t, int64(1), entity.OrderKindPurchaseOrder.Direction())
	assert.Equal(t, int64(-1), entity.OrderKindSalesOrder.Direction())
}

func TestOrderKind_FulfillmentStatus(t *testing.T) {
	assert.Equal(t, entity.OrderStatusReceived, entity.OrderKindPurchase.FulfillmentStatus())
	assert.Equal(t, entity.OrderStatusReceived, entity.OrderKindPurchaseOrder.FulfillmentStatus())
	assert.Equal(t, entity.OrderStatusFulfilled, entity.OrderKindSalesOrder.FulfillmentStatus())
}

func TestValidTransition_Compra(t *testing.T) {
	k := entity.OrderKindPurchase

	assert.True(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusReceived))
	assert.True(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusCancelled))
	// Salir de received es reversión.
	assert.True(t, k.ValidTransition(entity.OrderStatusReceived, entity.OrderStatusCancelled))
	assert.True(t, k.ValidTransition(entity.OrderStatusReceived, entity.OrderStatusPending))
	// cancelled es terminal.
	assert.False(t, k.ValidTransition(entity.OrderStatusCancelled, entity.OrderStatusPending))
	assert.False(t, k.ValidTransition(entity.OrderStatusCancelled, entity.OrderStatusReceived))
	// "ordered" y "fulfilled" no existen para compras directas.
	assert.False(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusOrdered))
	assert.False(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusFulfilled))
}

func TestValidTransition_OrdenDeCompra(t *testing.T) {
	k := entity.OrderKindPurchaseOrder

	assert.True(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusOrdered))
	assert.True(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusReceived))
	assert.True(t, k.ValidTransition(entity.OrderStatusOrdered, entity.OrderStatusReceived))
	assert.True(t, k.ValidTransition(entity.OrderStatusOrdered, entity.OrderStatusCancelled))
	// ordered no puede volver a pending.
	assert.False(t, k.ValidTransition(entity.OrderStatusOrdered, entity.OrderStatusPending))
	// received (cumplimiento) puede revertirse a cualquier otro estado válido.
	assert.True(t, k.ValidTransition(entity.OrderStatusReceived, entity.OrderStatusOrdered))
	assert.True(t, k.ValidTransition(entity.OrderStatusReceived, entity.OrderStatusCancelled))
}

func TestValidTransition_OrdenDeVenta(t *testing.T) {
	k := entity.OrderKindSalesOrder

	assert.True(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusFulfilled))
	assert.True(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusCancelled))
	assert.True(t, k.ValidTransition(entity.OrderStatusFulfilled, entity.OrderStatusCancelled))
	assert.True(t, k.ValidTransition(entity.OrderStatusFulfilled, entity.OrderStatusPending))
	// "received" pertenece a las compras.
	assert.False(t, k.ValidTransition(entity.OrderStatusPending, entity.OrderStatusReceived))
	assert.False(t, k.ValidTransition(entity.OrderStatusCancelled, entity.OrderStatusFulfilled))
}

func TestValidTransition_MismoEstado(t *testing.T) {
	for _, k := range []entity.OrderKind{entity.OrderKindPurchase, entity.OrderKindPurchaseOrder, entity.OrderKindSalesOrder} {
		for _, s := range k.Statuses() {
			assert.False(t, k.ValidTransition(s, s), "kind=%s status=%s", k, s)
		}
	}
}

func TestMovementTypes(t *testing.T) {
	assert.Equal(t, entity.MovementTypePurchase, entity.OrderKindPurchase.MovementType())
	assert.Equal(t, entity.MovementTypePurchaseReversal, entity.OrderKindPurchase.ReversalType())
	assert.Equal(t, entity.MovementTypePurchaseOrderReceived, entity.OrderKindPurchaseOrder.MovementType())
	assert.Equal(t, entity.MovementTypePurchaseOrderReversal, entity.OrderKindPurchaseOrder.ReversalType())
	assert.Equal(t, entity.MovementTypeSalesOrder, entity.OrderKindSalesOrder.MovementType())
	assert.Equal(t, entity.MovementTypeSalesOrderReversal, entity.OrderKindSalesOrder.ReversalType())
}

func TestValidAppointmentTransition(t *testing.T) {
	assert.True(t, entity.ValidAppointmentTransition(entity.AppointmentStatusScheduled, entity.AppointmentStatusInProgress))
	assert.True(t, entity.ValidAppointmentTransition(entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled))
	assert.True(t, entity.ValidAppointmentTransition(entity.AppointmentStatusInProgress, entity.AppointmentStatusCompleted))
	assert.True(t, entity.ValidAppointmentTransition(entity.AppointmentStatusInProgress, entity.AppointmentStatusCancelled))

	assert.False(t, entity.ValidAppointmentTransition(entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted))
	assert.False(t, entity.ValidAppointmentTransition(entity.AppointmentStatusCompleted, entity.AppointmentStatusInProgress))
	assert.False(t, entity.ValidAppointmentTransition(entity.AppointmentStatusCancelled, entity.AppointmentStatusScheduled))
	assert.False(t, entity.ValidAppointmentTransition(entity.AppointmentStatusScheduled, entity.AppointmentStatusScheduled))
}
