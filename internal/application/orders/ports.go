package orders

import (
	"context"

	"github.com/jcastano/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de órdenes y del ledger atados a esa tx. La transición de
// estado, las mutaciones de stock y las filas del ledger son todo-o-nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		partRepo repository.PartRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
