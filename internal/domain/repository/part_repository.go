package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/taller-api/internal/domain/entity"
)

// PartRepository persistencia de repuestos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar las
// mutaciones de stock dentro de la transacción del caller.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetBySKU(sku string) (*entity.Part, error)
	List(limit, offset int) ([]*entity.Part, error)
	ListLowStock() ([]*entity.Part, error)
	Update(part *entity.Part) error
	GetForUpdate(id string) (*entity.Part, error)
	UpdateStock(id string, stock int64) error
	UpdateCost(id string, cost decimal.Decimal) error
}
