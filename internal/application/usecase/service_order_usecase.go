package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/inventory"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// ServiceTxRunner ejecuta el cierre de una orden de servicio en una
// transacción: consumo de repuestos (movimientos "sale"), totales y estado.
type ServiceTxRunner interface {
	RunService(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		partRepo repository.PartRepository,
		soRepo repository.ServiceOrderRepository,
	) error) error
}

// ServiceOrderUseCase órdenes de servicio del taller: el trabajo sobre un
// vehículo, con mano de obra y repuestos. Completarla consume los repuestos
// del almacén; completed y cancelled son terminales.
type ServiceOrderUseCase struct {
	txRunner        ServiceTxRunner
	soRepo          repository.ServiceOrderRepository
	partRepo        repository.PartRepository
	vehicleRepo     repository.VehicleRepository
	mechanicRepo    repository.MechanicRepository
	appointmentRepo repository.AppointmentRepository
}

// NewServiceOrderUseCase construye el caso de uso.
func NewServiceOrderUseCase(
	txRunner ServiceTxRunner,
	soRepo repository.ServiceOrderRepository,
	partRepo repository.PartRepository,
	vehicleRepo repository.VehicleRepository,
	mechanicRepo repository.MechanicRepository,
	appointmentRepo repository.AppointmentRepository,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		txRunner:        txRunner,
		soRepo:          soRepo,
		partRepo:        partRepo,
		vehicleRepo:     vehicleRepo,
		mechanicRepo:    mechanicRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Create abre una orden de servicio en estado open, sin efecto en stock.
func (uc *ServiceOrderUseCase) Create(userID string, in dto.CreateServiceOrderRequest) (*entity.ServiceOrder, error) {
	if in.VehicleID == "" || in.MechanicID == "" || in.Description == "" || in.LaborCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	mechanic, err := uc.mechanicRepo.GetByID(in.MechanicID)
	if err != nil {
		return nil, err
	}
	if mechanic == nil {
		return nil, domain.ErrNotFound
	}
	if in.AppointmentID != "" {
		appointment, err := uc.appointmentRepo.GetByID(in.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.ServiceOrder{
		ID:            uuid.New().String(),
		AppointmentID: in.AppointmentID,
		VehicleID:     in.VehicleID,
		MechanicID:    in.MechanicID,
		Description:   in.Description,
		LaborCost:     in.LaborCost.Round(0),
		PartsCost:     decimal.Zero,
		Total:         in.LaborCost.Round(0),
		Status:        entity.ServiceOrderStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     userID,
	}
	for _, pn := range in.Parts {
		if pn.PartID == "" || pn.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		part, err := uc.partRepo.GetByID(pn.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := pn.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = part.Price
		}
		order.Parts = append(order.Parts, entity.ServiceOrderPart{
			ID:             uuid.New().String(),
			ServiceOrderID: order.ID,
			PartID:         pn.PartID,
			Quantity:       pn.Quantity,
			UnitPrice:      unitPrice,
			Total:          decimal.NewFromInt(pn.Quantity).Mul(unitPrice).Round(0),
		})
	}
	if err := uc.soRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Complete cierra la orden: consume cada repuesto con un movimiento "sale",
// calcula PartsCost y Total y marca completed — todo en una transacción.
// Si algún repuesto no tiene stock suficiente, nada se aplica.
func (uc *ServiceOrderUseCase) Complete(ctx context.Context, id, userID string) (*entity.ServiceOrder, error) {
	var result *entity.ServiceOrder
	err := uc.txRunner.RunService(ctx, func(
		movRepo repository.StockMovementRepository,
		partRepo repository.PartRepository,
		soRepo repository.ServiceOrderRepository,
	) error {
		order, err := soRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.ServiceOrderStatusOpen {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		partsCost := decimal.Zero
		for _, pn := range order.Parts {
			if _, err := inventory.Apply(movRepo, partRepo, inventory.ApplyInput{
				PartID:    pn.PartID,
				Type:      entity.MovementTypeSale,
				Delta:     -pn.Quantity,
				OrderKind: "service_order",
				OrderID:   order.ID,
				Notes:     "orden de servicio " + order.ID,
				UserID:    userID,
				Now:       now,
			}); err != nil {
				return err
			}
			partsCost = partsCost.Add(pn.Total)
		}
		order.PartsCost = partsCost
		order.Total = order.LaborCost.Add(partsCost)
		order.Status = entity.ServiceOrderStatusCompleted
		order.UpdatedAt = now
		if err := soRepo.UpdateTotals(order); err != nil {
			return err
		}
		if err := soRepo.UpdateStatus(order.ID, entity.ServiceOrderStatusCompleted); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel cancela una orden abierta, sin efecto en stock.
func (uc *ServiceOrderUseCase) Cancel(id string) (*entity.ServiceOrder, error) {
	order, err := uc.soRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.ServiceOrderStatusOpen {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.soRepo.UpdateStatus(id, entity.ServiceOrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = entity.ServiceOrderStatusCancelled
	return order, nil
}

// GetByID obtiene una orden de servicio con sus repuestos.
func (uc *ServiceOrderUseCase) GetByID(id string) (*entity.ServiceOrder, error) {
	return uc.soRepo.GetByID(id)
}

// List lista órdenes de servicio, opcionalmente por estado.
func (uc *ServiceOrderUseCase) List(status string, limit, offset int) ([]*entity.ServiceOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.soRepo.List(status, limit, offset)
}
