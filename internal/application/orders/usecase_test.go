package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/orders"
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

func newFakePartRepo(parts ...*entity.Part) *fakePartRepo {
	r := &fakePartRepo{parts: map[string]*entity.Part{}}
	for _, p := range parts {
		r.parts[p.ID] = p
	}
	return r
}

func (r *fakePartRepo) Create(p *entity.Part) error               { r.parts[p.ID] = p; return nil }
func (r *fakePartRepo) GetByID(id string) (*entity.Part, error)   { return r.parts[id], nil }
func (r *fakePartRepo) GetForUpdate(id string) (*entity.Part, error) {
	return r.parts[id], nil
}
func (r *fakePartRepo) GetBySKU(sku string) (*entity.Part, error) {
	for _, p := range r.parts {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePartRepo) List(limit, offset int) ([]*entity.Part, error) { return nil, nil }
func (r *fakePartRepo) ListLowStock() ([]*entity.Part, error)          { return nil, nil }
func (r *fakePartRepo) Update(p *entity.Part) error                    { r.parts[p.ID] = p; return nil }
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
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.OrderKind == orderKind && m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders   map[string]*entity.Order
	counters map[entity.OrderKind]int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[string]*entity.Order{},
		counters: map[entity.OrderKind]int64{},
	}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) List(kind entity.OrderKind, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.Kind == kind && (status == "" || o.Status == status) {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) UpdateStatus(id, status string, effectiveDate time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.EffectiveDate = effectiveDate
	return nil
}
func (r *fakeOrderRepo) NextNumber(kind entity.OrderKind) (string, error) {
	r.counters[kind]++
	prefix := map[entity.OrderKind]string{
		entity.OrderKindPurchase:      "CP",
		entity.OrderKindPurchaseOrder: "OC",
		entity.OrderKindSalesOrder:    "OV",
	}[kind]
	return fmt.Sprintf("%s-%06d", prefix, r.counters[kind]), nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByDocument(document string) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                    { return nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error                    { return nil }

// fakeTxRunner imita la transacción: si fn falla, restaura stock, costo,
// estado de órdenes y descarta las filas del ledger escritas por fn.
type fakeTxRunner struct {
	parts  *fakePartRepo
	movs   *fakeMovementRepo
	orders *fakeOrderRepo
}

func (r *fakeTxRunner) RunOrder(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	partRepo repository.PartRepository,
	orderRepo repository.OrderRepository,
) error) error {
	type partSnap struct {
		stock int64
		cost  decimal.Decimal
	}
	partSnaps := map[string]partSnap{}
	for id, p := range r.parts.parts {
		partSnaps[id] = partSnap{stock: p.Stock, cost: p.Cost}
	}
	statusSnaps := map[string]string{}
	for id, o := range r.orders.orders {
		statusSnaps[id] = o.Status
	}
	movCount := len(r.movs.movements)

	if err := fn(r.movs, r.parts, r.orders); err != nil {
		for id, s := range partSnaps {
			r.parts.parts[id].Stock = s.stock
			r.parts.parts[id].Cost = s.cost
		}
		for id, s := range statusSnaps {
			r.orders.orders[id].Status = s
		}
		r.movs.movements = r.movs.movements[:movCount]
		return err
	}
	return nil
}

type fixture struct {
	uc        *orders.UseCase
	parts     *fakePartRepo
	movs      *fakeMovementRepo
	orders    *fakeOrderRepo
	customers *fakeCustomerRepo
	suppliers *fakeSupplierRepo
}

func newFixture(parts ...*entity.Part) *fixture {
	partRepo := newFakePartRepo(parts...)
	movRepo := &fakeMovementRepo{}
	orderRepo := newFakeOrderRepo()
	customerRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Pedro Gómez", Document: "123456"},
	}}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"supp-1": {ID: "supp-1", Name: "Importadora Andina", Document: "900123456"},
	}}
	runner := &fakeTxRunner{parts: partRepo, movs: movRepo, orders: orderRepo}
	return &fixture{
		uc:        orders.NewUseCase(runner, orderRepo, partRepo, customerRepo, supplierRepo),
		parts:     partRepo,
		movs:      movRepo,
		orders:    orderRepo,
		customers: customerRepo,
		suppliers: supplierRepo,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func part(id string, stock int64, price, cost string) *entity.Part {
	return &entity.Part{
		ID:    id,
		SKU:   "SKU-" + id,
		Name:  "Repuesto " + id,
		Stock: stock,
		Price: dec(price),
		Cost:  dec(cost),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenDeVenta_UsaPrecioDeLista(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))

	order, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "user-1", dto.CreateOrderRequest{
		CounterpartyID: "cust-1",
		Lines: []dto.CreateOrderLineRequest{
			{PartID: "p1", Quantity: 2}, // precio 0 → lista
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "OV-000001", order.Number)
	require.Len(t, order.Details, 1)
	assert.True(t, dec("5000").Equal(order.Details[0].UnitPrice))
	assert.True(t, dec("10000").Equal(order.Subtotal))
	assert.True(t, dec("10000").Equal(order.Total))

	// Crear la orden no toca el stock ni el ledger.
	assert.Equal(t, int64(10), f.parts.parts["p1"].Stock)
	assert.Empty(t, f.movs.movements)
}

func TestCreate_NumeracionConsecutivaPorKind(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		CounterpartyID: "supp-1",
		Lines:          []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: 1, UnitPrice: dec("100")}},
	}

	a, err := f.uc.Create(ctx, entity.OrderKindPurchase, "u", req)
	require.NoError(t, err)
	b, err := f.uc.Create(ctx, entity.OrderKindPurchase, "u", req)
	require.NoError(t, err)
	c, err := f.uc.Create(ctx, entity.OrderKindPurchaseOrder, "u", req)
	require.NoError(t, err)

	assert.Equal(t, "CP-000001", a.Number)
	assert.Equal(t, "CP-000002", b.Number)
	assert.Equal(t, "OC-000001", c.Number, "cada kind numera por separado")
}

func TestCreate_ContraparteInexistente(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	lines := []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: 1, UnitPrice: dec("100")}}

	// Cliente inexistente en venta.
	_, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "u", dto.CreateOrderRequest{
		CounterpartyID: "no-such-customer", Lines: lines,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Un cliente no sirve como contraparte de una compra.
	_, err = f.uc.Create(context.Background(), entity.OrderKindPurchase, "u", dto.CreateOrderRequest{
		CounterpartyID: "cust-1", Lines: lines,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SinLineas(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "u", dto.CreateOrderRequest{
		CounterpartyID: "cust-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadInvalidaEnLinea(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	_, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "u", dto.CreateOrderRequest{
		CounterpartyID: "cust-1",
		Lines:          []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: -2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ConDescuentoEImpuesto(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))

	order, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "u", dto.CreateOrderRequest{
		CounterpartyID: "cust-1",
		Lines: []dto.CreateOrderLineRequest{
			{PartID: "p1", Quantity: 2, DiscountMode: "percent", DiscountValue: dec("10")},
		},
		DiscountMode:  "fixed",
		DiscountValue: dec("1000"),
		TaxMode:       "percent",
		TaxValue:      dec("19"),
	})
	require.NoError(t, err)

	// 2x5000=10000, 10% línea → 9000, -1000 orden → 8000, +19% → 9520
	assert.True(t, dec("9000").Equal(order.Subtotal))
	assert.True(t, dec("1000").Equal(order.DiscountTotal))
	assert.True(t, dec("1520").Equal(order.TaxTotal))
	assert.True(t, dec("9520").Equal(order.Total))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition — ventas
// ──────────────────────────────────────────────────────────────────────────────

func createSalesOrder(t *testing.T, f *fixture, qty int64) *entity.Order {
	t.Helper()
	order, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "user-1", dto.CreateOrderRequest{
		CounterpartyID: "cust-1",
		Lines:          []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: qty}},
	})
	require.NoError(t, err)
	return order
}

func TestTransition_VentaCumplida_DescuentaStock(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	order := createSalesOrder(t, f, 4)

	updated, err := f.uc.Transition(context.Background(), order.ID, entity.OrderStatusFulfilled, "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusFulfilled, updated.Status)
	assert.Equal(t, int64(6), f.parts.parts["p1"].Stock)

	require.Len(t, f.movs.movements, 1)
	mov := f.movs.movements[0]
	assert.Equal(t, entity.MovementTypeSalesOrder, mov.Type)
	assert.Equal(t, int64(-4), mov.Quantity)
	assert.Equal(t, int64(10), mov.BeforeStock)
	assert.Equal(t, int64(6), mov.AfterStock)
	assert.Equal(t, "cust-1", mov.CustomerID)
	assert.Equal(t, string(entity.OrderKindSalesOrder), mov.OrderKind)
	assert.Equal(t, order.ID, mov.OrderID)
}

func TestTransition_CancelarVentaCumplida_RevierteStock(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	order := createSalesOrder(t, f, 4)
	ctx := context.Background()

	_, err := f.uc.Transition(ctx, order.ID, entity.OrderStatusFulfilled, "user-1", nil)
	require.NoError(t, err)
	require.Equal(t, int64(6), f.parts.parts["p1"].Stock)

	updated, err := f.uc.Transition(ctx, order.ID, entity.OrderStatusCancelled, "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
	assert.Equal(t, int64(10), f.parts.parts["p1"].Stock, "la reversión restituye el stock exacto")

	require.Len(t, f.movs.movements, 2)
	rev := f.movs.movements[1]
	assert.Equal(t, entity.MovementTypeSalesOrderReversal, rev.Type)
	assert.Equal(t, int64(4), rev.Quantity)
	assert.Equal(t, int64(6), rev.BeforeStock)
	assert.Equal(t, int64(10), rev.AfterStock)
}

func TestTransition_VentaSinStock_NoCambiaNada(t *testing.T) {
	f := newFixture(part("p1", 3, "5000", "3000"))
	order := createSalesOrder(t, f, 5)

	_, err := f.uc.Transition(context.Background(), order.ID, entity.OrderStatusFulfilled, "user-1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo-o-nada: estado, stock y ledger intactos.
	assert.Equal(t, entity.OrderStatusPending, f.orders.orders[order.ID].Status)
	assert.Equal(t, int64(3), f.parts.parts["p1"].Stock)
	assert.Empty(t, f.movs.movements)
}

func TestTransition_VentaMultilinea_AtomicaAnteInsuficiencia(t *testing.T) {
	f := newFixture(
		part("p1", 10, "5000", "3000"),
		part("p2", 1, "2000", "1000"),
	)
	order, err := f.uc.Create(context.Background(), entity.OrderKindSalesOrder, "u", dto.CreateOrderRequest{
		CounterpartyID: "cust-1",
		Lines: []dto.CreateOrderLineRequest{
			{PartID: "p1", Quantity: 2},
			{PartID: "p2", Quantity: 5}, // no hay stock
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), order.ID, entity.OrderStatusFulfilled, "u", nil)
	require.Error(t, err)

	// La primera línea ya había descontado; el rollback la restituye.
	assert.Equal(t, int64(10), f.parts.parts["p1"].Stock)
	assert.Equal(t, int64(1), f.parts.parts["p2"].Stock)
	assert.Empty(t, f.movs.movements)
	assert.Equal(t, entity.OrderStatusPending, f.orders.orders[order.ID].Status)
}

func TestTransition_Invalida(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	order := createSalesOrder(t, f, 1)
	ctx := context.Background()

	_, err := f.uc.Transition(ctx, order.ID, entity.OrderStatusReceived, "u", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "received no existe para ventas")

	_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusCancelled, "u", nil)
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusPending, "u", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cancelled es terminal")
}

func TestTransition_OrdenInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Transition(context.Background(), "no-such-order", entity.OrderStatusFulfilled, "u", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_FechaEfectivaExplicita(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	order := createSalesOrder(t, f, 1)

	when := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	updated, err := f.uc.Transition(context.Background(), order.ID, entity.OrderStatusFulfilled, "u", &when)
	require.NoError(t, err)

	assert.True(t, updated.EffectiveDate.Equal(when))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition — compras y costo promedio
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_CompraRecibida_SumaStockYActualizaCosto(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "100"))
	order, err := f.uc.Create(context.Background(), entity.OrderKindPurchase, "user-1", dto.CreateOrderRequest{
		CounterpartyID: "supp-1",
		Lines:          []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: 5, UnitPrice: dec("130")}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), order.ID, entity.OrderStatusReceived, "user-1", nil)
	require.NoError(t, err)

	p := f.parts.parts["p1"]
	assert.Equal(t, int64(15), p.Stock)
	// (10*100 + 5*130) / 15 = 110
	assert.True(t, dec("110").Equal(p.Cost), "costo promedio ponderado, obtenido %s", p.Cost)

	require.Len(t, f.movs.movements, 1)
	mov := f.movs.movements[0]
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.Equal(t, "supp-1", mov.SupplierID)
}

func TestTransition_RevertirCompraRecibida_NoTocaElCosto(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "100"))
	ctx := context.Background()
	order, err := f.uc.Create(ctx, entity.OrderKindPurchase, "u", dto.CreateOrderRequest{
		CounterpartyID: "supp-1",
		Lines:          []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: 5, UnitPrice: dec("130")}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusReceived, "u", nil)
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusPending, "u", nil)
	require.NoError(t, err)

	p := f.parts.parts["p1"]
	assert.Equal(t, int64(10), p.Stock, "la reversión devuelve el stock")
	assert.True(t, dec("110").Equal(p.Cost), "el costo promedio no se revierte")

	require.Len(t, f.movs.movements, 2)
	assert.Equal(t, entity.MovementTypePurchaseReversal, f.movs.movements[1].Type)
	assert.Equal(t, int64(-5), f.movs.movements[1].Quantity)
}

func TestTransition_OrdenDeCompra_OrderedNoAfectaStock(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "100"))
	ctx := context.Background()
	order, err := f.uc.Create(ctx, entity.OrderKindPurchaseOrder, "u", dto.CreateOrderRequest{
		CounterpartyID: "supp-1",
		Lines:          []dto.CreateOrderLineRequest{{PartID: "p1", Quantity: 3, UnitPrice: dec("120")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "OC-000001", order.Number)

	_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusOrdered, "u", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.parts.parts["p1"].Stock, "ordered no mueve inventario")
	assert.Empty(t, f.movs.movements)

	_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusReceived, "u", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(13), f.parts.parts["p1"].Stock)
	require.Len(t, f.movs.movements, 1)
	assert.Equal(t, entity.MovementTypePurchaseOrderReceived, f.movs.movements[0].Type)
}

// Ciclo cumplir/revertir repetido: el stock siempre vuelve al punto de partida
// y el ledger conserva la historia completa.
func TestTransition_CicloCumplirRevertir(t *testing.T) {
	f := newFixture(part("p1", 10, "5000", "3000"))
	order := createSalesOrder(t, f, 4)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.uc.Transition(ctx, order.ID, entity.OrderStatusFulfilled, "u", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(6), f.parts.parts["p1"].Stock)

		_, err = f.uc.Transition(ctx, order.ID, entity.OrderStatusPending, "u", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(10), f.parts.parts["p1"].Stock)
	}
	assert.Len(t, f.movs.movements, 6, "cada aplicación y reversión deja su fila")

	var sum int64
	for _, m := range f.movs.movements {
		assert.Equal(t, m.AfterStock, m.BeforeStock+m.Quantity)
		sum += m.Quantity
	}
	assert.Equal(t, int64(0), sum)
}
