package repository

import (
	"time"

	"github.com/jcastano/taller-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos del ledger.
type MovementFilter struct {
	PartID string
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// StockMovementRepository persistencia del libro de movimientos.
// Solo inserta y lee: las filas son inmutables (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	ListByOrder(orderKind, orderID string) ([]*entity.StockMovement, error)
}
