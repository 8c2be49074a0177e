package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// ApplyInput describe una mutación de stock a registrar en el ledger.
// Delta lleva el signo: positivo entra, negativo sale.
type ApplyInput struct {
	PartID     string
	Type       string
	Delta      int64
	SupplierID string
	CustomerID string
	OrderKind  string
	OrderID    string
	Notes      string
	UserID     string
	Now        time.Time
}

// Apply es la única operación que muta Part.Stock. Bloquea la fila del
// repuesto (SELECT FOR UPDATE), valida que una salida no deje stock negativo,
// escribe el nuevo stock y crea la fila inmutable del ledger con el snapshot
// before/after — todo con los repositorios de la transacción del caller.
//
// Las salidas insuficientes siempre se rechazan, nunca se ajustan a cero.
func Apply(movRepo repository.StockMovementRepository, partRepo repository.PartRepository, in ApplyInput) (*entity.StockMovement, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	part, err := partRepo.GetForUpdate(in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	newStock := part.Stock + in.Delta
	if newStock < 0 {
		return nil, &domain.InsufficientStockError{
			PartID:    part.ID,
			PartName:  part.Name,
			Requested: -in.Delta,
			Available: part.Stock,
		}
	}
	if err := partRepo.UpdateStock(part.ID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		PartID:      part.ID,
		Type:        in.Type,
		Quantity:    in.Delta,
		BeforeStock: part.Stock,
		AfterStock:  newStock,
		SupplierID:  in.SupplierID,
		CustomerID:  in.CustomerID,
		OrderKind:   in.OrderKind,
		OrderID:     in.OrderID,
		Notes:       in.Notes,
		CreatedAt:   in.Now,
		CreatedBy:   in.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
