package repository

import (
	"time"

	"github.com/jcastano/taller-api/internal/domain/entity"
)

// OrderRepository persistencia de órdenes (compras, órdenes de compra y ventas).
// Create inserta cabecera y líneas; las líneas no se modifican después.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(kind entity.OrderKind, status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string, effectiveDate time.Time) error
	NextNumber(kind entity.OrderKind) (string, error)
}
