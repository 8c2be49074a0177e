package inventory

import (
	"context"
	"time"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// RecordMovementUseCase registra entradas y salidas manuales de stock
// (tipos "in" y "out") de forma transaccional, con bloqueo de fila y
// Commit/Rollback. Las órdenes usan su propio caso de uso.
type RecordMovementUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	movRepo  repository.StockMovementRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, partRepo repository.PartRepository, movRepo repository.StockMovementRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, partRepo: partRepo, movRepo: movRepo}
}

// RecordManualMovement valida y registra un movimiento manual.
// Devuelve el movimiento creado con el snapshot before/after.
func (uc *RecordMovementUseCase) RecordManualMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	if in.PartID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var delta int64
	switch in.Type {
	case entity.MovementTypeIn:
		delta = in.Quantity
	case entity.MovementTypeOut:
		delta = -in.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	// Existencia fuera de la tx; la validación de stock va dentro, bajo el lock.
	part, err := uc.partRepo.GetByID(in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		partRepo repository.PartRepository,
	) error {
		mov, err := Apply(movRepo, partRepo, ApplyInput{
			PartID: in.PartID,
			Type:   in.Type,
			Delta:  delta,
			Notes:  in.Notes,
			UserID: userID,
			Now:    now,
		})
		if err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListMovements lista el ledger filtrado por repuesto, tipo y rango de fechas.
func (uc *RecordMovementUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.movRepo.List(filter)
}

// ParseMovementRange interpreta los parámetros from/to (RFC 3339 o fecha simple).
func ParseMovementRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return &t, nil
	}
	from, err := parse(fromStr)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(toStr)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
