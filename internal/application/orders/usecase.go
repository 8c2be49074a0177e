package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/inventory"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/pricing"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// UseCase implementa la máquina de estados de órdenes, unificada para las
// tres variantes (compra directa, orden de compra y orden de venta) con el
// signo parametrizado por entity.OrderKind. Las compras suman stock al
// recibirse; las ventas lo restan al cumplirse; salir del estado de
// cumplimiento revierte el efecto con movimientos de tipo reversal.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	partRepo     repository.PartRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	partRepo repository.PartRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		partRepo:     partRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

func defaultMode(mode string) string {
	if mode == "" {
		return pricing.ModeNone
	}
	return mode
}

// Create crea una orden en estado pending, sin efecto en stock.
// Calcula montos (descuento por línea, descuento de orden, impuesto) y
// persiste cabecera y líneas en una sola transacción. Las líneas quedan
// inmutables.
func (uc *UseCase) Create(ctx context.Context, kind entity.OrderKind, userID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.CounterpartyID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Contraparte: proveedor para compras, cliente para ventas.
	if kind == entity.OrderKindSalesOrder {
		c, err := uc.customerRepo.GetByID(in.CounterpartyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		s, err := uc.supplierRepo.GetByID(in.CounterpartyID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Resolver repuestos y precios unitarios (ventas: 0 = precio de lista).
	lines := make([]pricing.LineInput, 0, len(in.Lines))
	for _, ln := range in.Lines {
		if ln.PartID == "" || ln.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		part, err := uc.partRepo.GetByID(ln.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := ln.UnitPrice
		if unitPrice.IsZero() && kind == entity.OrderKindSalesOrder {
			unitPrice = part.Price
		}
		lines = append(lines, pricing.LineInput{
			Quantity:      ln.Quantity,
			UnitPrice:     unitPrice,
			DiscountMode:  defaultMode(ln.DiscountMode),
			DiscountValue: ln.DiscountValue,
		})
	}

	discountMode := defaultMode(in.DiscountMode)
	taxMode := defaultMode(in.TaxMode)
	amounts, err := pricing.ComputeOrder(lines, discountMode, in.DiscountValue, taxMode, in.TaxValue)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		Kind:           kind,
		CounterpartyID: in.CounterpartyID,
		Status:         entity.OrderStatusPending,
		Subtotal:       amounts.Subtotal,
		DiscountMode:   discountMode,
		DiscountValue:  in.DiscountValue,
		DiscountTotal:  amounts.DiscountTotal,
		TaxMode:        taxMode,
		TaxValue:       in.TaxValue,
		TaxTotal:       amounts.TaxTotal,
		Total:          amounts.Total,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      userID,
	}
	for i, ln := range in.Lines {
		order.Details = append(order.Details, entity.OrderDetail{
			ID:            uuid.New().String(),
			OrderID:       order.ID,
			PartID:        ln.PartID,
			Quantity:      ln.Quantity,
			UnitPrice:     lines[i].UnitPrice,
			DiscountMode:  lines[i].DiscountMode,
			DiscountValue: ln.DiscountValue,
			Subtotal:      amounts.Lines[i].Subtotal,
			Total:         amounts.Lines[i].Total,
		})
	}

	err = uc.txRunner.RunOrder(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.PartRepository,
		orderRepo repository.OrderRepository,
	) error {
		number, err := orderRepo.NextNumber(kind)
		if err != nil {
			return err
		}
		order.Number = number
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition cambia el estado de la orden. Entrar al estado de cumplimiento
// aplica el delta de cada línea y emite un movimiento de ledger por línea;
// salir de él aplica el inverso exacto con movimientos de reversal. Cualquier
// otra transición válida solo reescribe el estado. Todo dentro de una
// transacción: si una línea no tiene stock suficiente no se aplica ninguna.
func (uc *UseCase) Transition(ctx context.Context, orderID, newStatus, userID string, effectiveDate *time.Time) (*entity.Order, error) {
	var result *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		partRepo repository.PartRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		kind := order.Kind
		if !kind.ValidTransition(order.Status, newStatus) {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		when := now
		if effectiveDate != nil {
			when = *effectiveDate
		}

		fulfillment := kind.FulfillmentStatus()
		entering := newStatus == fulfillment && order.Status != fulfillment
		leaving := order.Status == fulfillment && newStatus != fulfillment

		switch {
		case entering:
			if err := uc.applyLines(movRepo, partRepo, order, kind.MovementType(), kind.Direction(), userID, now); err != nil {
				return err
			}
		case leaving:
			if err := uc.applyLines(movRepo, partRepo, order, kind.ReversalType(), -kind.Direction(), userID, now); err != nil {
				return err
			}
		}

		if err := orderRepo.UpdateStatus(order.ID, newStatus, when); err != nil {
			return err
		}
		order.Status = newStatus
		order.EffectiveDate = when
		order.UpdatedAt = now
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyLines aplica el delta por línea a cada repuesto, un movimiento de
// ledger por línea. inventory.Apply bloquea la fila, valida stock y rechaza
// la transición completa ante cualquier insuficiencia.
func (uc *UseCase) applyLines(
	movRepo repository.StockMovementRepository,
	partRepo repository.PartRepository,
	order *entity.Order,
	movementType string,
	direction int64,
	userID string,
	now time.Time,
) error {
	supplierID, customerID := "", ""
	if order.Kind == entity.OrderKindSalesOrder {
		customerID = order.CounterpartyID
	} else {
		supplierID = order.CounterpartyID
	}
	for _, det := range order.Details {
		mov, err := inventory.Apply(movRepo, partRepo, inventory.ApplyInput{
			PartID:     det.PartID,
			Type:       movementType,
			Delta:      direction * det.Quantity,
			SupplierID: supplierID,
			CustomerID: customerID,
			OrderKind:  string(order.Kind),
			OrderID:    order.ID,
			Notes:      "orden " + order.Number,
			UserID:     userID,
			Now:        now,
		})
		if err != nil {
			return err
		}
		// Las entradas por compra actualizan el costo promedio ponderado.
		if direction > 0 && order.Kind != entity.OrderKindSalesOrder {
			if err := uc.updateAverageCost(partRepo, det, mov); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uc *UseCase) updateAverageCost(partRepo repository.PartRepository, det entity.OrderDetail, mov *entity.StockMovement) error {
	part, err := partRepo.GetByID(det.PartID)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	newCost := pricing.WeightedAverageCost(mov.BeforeStock, part.Cost, det.Quantity, det.UnitPrice)
	if newCost.Equal(part.Cost) || newCost.Equal(decimal.Zero) {
		return nil
	}
	return partRepo.UpdateCost(part.ID, newCost)
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(id string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(id)
}

// List lista órdenes de un kind, opcionalmente filtradas por estado.
func (uc *UseCase) List(kind entity.OrderKind, status string, limit, offset int) ([]*entity.Order, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	return uc.orderRepo.List(kind, status, limit, offset)
}
