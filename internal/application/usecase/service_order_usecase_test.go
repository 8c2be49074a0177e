package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/usecase"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePartRepo struct {
	parts map[string]*entity.Part
}

func (r *fakePartRepo) Create(p *entity.Part) error                  { r.parts[p.ID] = p; return nil }
func (r *fakePartRepo) GetByID(id string) (*entity.Part, error)      { return r.parts[id], nil }
func (r *fakePartRepo) GetForUpdate(id string) (*entity.Part, error) { return r.parts[id], nil }
func (r *fakePartRepo) GetBySKU(sku string) (*entity.Part, error)    { return nil, nil }
func (r *fakePartRepo) List(limit, offset int) ([]*entity.Part, error) {
	return nil, nil
}
func (r *fakePartRepo) ListLowStock() ([]*entity.Part, error) { return nil, nil }
func (r *fakePartRepo) Update(p *entity.Part) error           { return nil }
func (r *fakePartRepo) UpdateStock(id string, stock int64) error {
	r.parts[id].Stock = stock
	return nil
}
func (r *fakePartRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.parts[id].Cost = cost
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.movements, nil
}
func (r *fakeMovementRepo) ListByOrder(orderKind, orderID string) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeServiceOrderRepo struct {
	orders map[string]*entity.ServiceOrder
}

func (r *fakeServiceOrderRepo) Create(o *entity.ServiceOrder) error { r.orders[o.ID] = o; return nil }
func (r *fakeServiceOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	return r.orders[id], nil
}
func (r *fakeServiceOrderRepo) List(status string, limit, offset int) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeServiceOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}
func (r *fakeServiceOrderRepo) UpdateTotals(order *entity.ServiceOrder) error {
	o, ok := r.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	o.PartsCost = order.PartsCost
	o.Total = order.Total
	return nil
}

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error                   { return nil }
func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error)       { return r.vehicles[id], nil }
func (r *fakeVehicleRepo) GetByPlate(plate string) (*entity.Vehicle, error) { return nil, nil }
func (r *fakeVehicleRepo) ListByCustomer(customerID string) ([]*entity.Vehicle, error) {
	return nil, nil
}
func (r *fakeVehicleRepo) Update(v *entity.Vehicle) error { return nil }

type fakeMechanicRepo struct {
	mechanics map[string]*entity.Mechanic
}

func (r *fakeMechanicRepo) Create(m *entity.Mechanic) error { return nil }
func (r *fakeMechanicRepo) GetByID(id string) (*entity.Mechanic, error) {
	return r.mechanics[id], nil
}
func (r *fakeMechanicRepo) List(onlyActive bool) ([]*entity.Mechanic, error) { return nil, nil }
func (r *fakeMechanicRepo) Update(m *entity.Mechanic) error                  { return nil }

type fakeAppointmentRepo struct {
	appointments map[string]*entity.Appointment
}

func (r *fakeAppointmentRepo) Create(a *entity.Appointment) error { return nil }
func (r *fakeAppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	return r.appointments[id], nil
}
func (r *fakeAppointmentRepo) ListByMechanic(mechanicID string, from, to time.Time) ([]*entity.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) ListByVehicle(vehicleID string) ([]*entity.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) Update(a *entity.Appointment) error { return nil }
func (r *fakeAppointmentRepo) CountOverlapping(mechanicID string, start, end time.Time, excludeID string) (int, error) {
	return 0, nil
}

// fakeServiceTxRunner restaura stock, movimientos y estado/totales de las
// órdenes de servicio cuando fn falla.
type fakeServiceTxRunner struct {
	parts  *fakePartRepo
	movs   *fakeMovementRepo
	orders *fakeServiceOrderRepo
}

func (r *fakeServiceTxRunner) RunService(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	partRepo repository.PartRepository,
	soRepo repository.ServiceOrderRepository,
) error) error {
	stocks := map[string]int64{}
	for id, p := range r.parts.parts {
		stocks[id] = p.Stock
	}
	type orderSnap struct {
		status    string
		partsCost decimal.Decimal
		total     decimal.Decimal
	}
	orderSnaps := map[string]orderSnap{}
	for id, o := range r.orders.orders {
		orderSnaps[id] = orderSnap{status: o.Status, partsCost: o.PartsCost, total: o.Total}
	}
	movCount := len(r.movs.movements)

	if err := fn(r.movs, r.parts, r.orders); err != nil {
		for id, s := range stocks {
			r.parts.parts[id].Stock = s
		}
		for id, s := range orderSnaps {
			o := r.orders.orders[id]
			o.Status = s.status
			o.PartsCost = s.partsCost
			o.Total = s.total
		}
		r.movs.movements = r.movs.movements[:movCount]
		return err
	}
	return nil
}

type fixture struct {
	uc    *usecase.ServiceOrderUseCase
	parts *fakePartRepo
	movs  *fakeMovementRepo
	so    *fakeServiceOrderRepo
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture(parts ...*entity.Part) *fixture {
	partRepo := &fakePartRepo{parts: map[string]*entity.Part{}}
	for _, p := range parts {
		partRepo.parts[p.ID] = p
	}
	movRepo := &fakeMovementRepo{}
	soRepo := &fakeServiceOrderRepo{orders: map[string]*entity.ServiceOrder{}}
	vehicleRepo := &fakeVehicleRepo{vehicles: map[string]*entity.Vehicle{
		"veh-1": {ID: "veh-1", Plate: "ABC123"},
	}}
	mechanicRepo := &fakeMechanicRepo{mechanics: map[string]*entity.Mechanic{
		"mech-1": {ID: "mech-1", Name: "Carlos Ruiz", Active: true},
	}}
	appointmentRepo := &fakeAppointmentRepo{appointments: map[string]*entity.Appointment{
		"appt-1": {ID: "appt-1", VehicleID: "veh-1", MechanicID: "mech-1"},
	}}
	runner := &fakeServiceTxRunner{parts: partRepo, movs: movRepo, orders: soRepo}
	return &fixture{
		uc: usecase.NewServiceOrderUseCase(
			runner, soRepo, partRepo, vehicleRepo, mechanicRepo, appointmentRepo,
		),
		parts: partRepo,
		movs:  movRepo,
		so:    soRepo,
	}
}

func part(id string, stock int64, price string) *entity.Part {
	return &entity.Part{ID: id, SKU: "SKU-" + id, Name: "Repuesto " + id, Stock: stock, Price: dec(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrder_Create(t *testing.T) {
	f := newFixture(part("p1", 10, "5000"))

	order, err := f.uc.Create("user-1", dto.CreateServiceOrderRequest{
		AppointmentID: "appt-1",
		VehicleID:     "veh-1",
		MechanicID:    "mech-1",
		Description:   "cambio de pastillas de freno",
		LaborCost:     dec("30000"),
		Parts: []dto.CreateServiceOrderPartRequest{
			{PartID: "p1", Quantity: 2}, // precio 0 → lista
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ServiceOrderStatusOpen, order.Status)
	assert.True(t, dec("30000").Equal(order.Total), "abierta: solo mano de obra")
	require.Len(t, order.Parts, 1)
	assert.True(t, dec("5000").Equal(order.Parts[0].UnitPrice))
	assert.True(t, dec("10000").Equal(order.Parts[0].Total))

	// Abrir la orden no consume stock.
	assert.Equal(t, int64(10), f.parts.parts["p1"].Stock)
	assert.Empty(t, f.movs.movements)
}

func TestServiceOrder_Create_Validaciones(t *testing.T) {
	f := newFixture(part("p1", 10, "5000"))

	_, err := f.uc.Create("u", dto.CreateServiceOrderRequest{
		VehicleID: "veh-1", MechanicID: "mech-1", LaborCost: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descripción obligatoria")

	_, err = f.uc.Create("u", dto.CreateServiceOrderRequest{
		VehicleID: "veh-1", MechanicID: "mech-1", Description: "x", LaborCost: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mano de obra no negativa")

	_, err = f.uc.Create("u", dto.CreateServiceOrderRequest{
		VehicleID: "no-such", MechanicID: "mech-1", Description: "x", LaborCost: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create("u", dto.CreateServiceOrderRequest{
		VehicleID: "veh-1", MechanicID: "mech-1", Description: "x", LaborCost: dec("100"),
		AppointmentID: "no-such-appt",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func openOrder(t *testing.T, f *fixture, qty int64) *entity.ServiceOrder {
	t.Helper()
	order, err := f.uc.Create("user-1", dto.CreateServiceOrderRequest{
		VehicleID:   "veh-1",
		MechanicID:  "mech-1",
		Description: "mantenimiento general",
		LaborCost:   dec("30000"),
		Parts: []dto.CreateServiceOrderPartRequest{
			{PartID: "p1", Quantity: qty},
		},
	})
	require.NoError(t, err)
	return order
}

func TestServiceOrder_Complete_ConsumeRepuestos(t *testing.T) {
	f := newFixture(part("p1", 10, "5000"))
	order := openOrder(t, f, 2)

	completed, err := f.uc.Complete(context.Background(), order.ID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.ServiceOrderStatusCompleted, completed.Status)
	assert.True(t, dec("10000").Equal(completed.PartsCost))
	assert.True(t, dec("40000").Equal(completed.Total), "mano de obra + repuestos")
	assert.Equal(t, int64(8), f.parts.parts["p1"].Stock)

	require.Len(t, f.movs.movements, 1)
	mov := f.movs.movements[0]
	assert.Equal(t, entity.MovementTypeSale, mov.Type)
	assert.Equal(t, int64(-2), mov.Quantity)
	assert.Equal(t, "service_order", mov.OrderKind)
	assert.Equal(t, order.ID, mov.OrderID)
}

func TestServiceOrder_Complete_SinStock_NoCambiaNada(t *testing.T) {
	f := newFixture(part("p1", 1, "5000"))
	order := openOrder(t, f, 3)

	_, err := f.uc.Complete(context.Background(), order.ID, "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, entity.ServiceOrderStatusOpen, f.so.orders[order.ID].Status)
	assert.Equal(t, int64(1), f.parts.parts["p1"].Stock)
	assert.Empty(t, f.movs.movements)
}

func TestServiceOrder_Complete_EsTerminal(t *testing.T) {
	f := newFixture(part("p1", 10, "5000"))
	order := openOrder(t, f, 1)
	ctx := context.Background()

	_, err := f.uc.Complete(ctx, order.ID, "u")
	require.NoError(t, err)

	_, err = f.uc.Complete(ctx, order.ID, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se completa dos veces")

	_, err = f.uc.Cancel(order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "completed es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrder_Cancel(t *testing.T) {
	f := newFixture(part("p1", 10, "5000"))
	order := openOrder(t, f, 2)

	cancelled, err := f.uc.Cancel(order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.ServiceOrderStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(10), f.parts.parts["p1"].Stock, "cancelar no toca stock")
	assert.Empty(t, f.movs.movements)

	_, err = f.uc.Complete(context.Background(), order.ID, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cancelled es terminal")
}

func TestServiceOrder_Cancel_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Cancel("no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
