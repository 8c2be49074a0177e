package repository

import "github.com/jcastano/taller-api/internal/domain/entity"

// ServiceOrderRepository persistencia de órdenes de servicio.
type ServiceOrderRepository interface {
	Create(order *entity.ServiceOrder) error
	GetByID(id string) (*entity.ServiceOrder, error)
	List(status string, limit, offset int) ([]*entity.ServiceOrder, error)
	UpdateStatus(id, status string) error
	UpdateTotals(order *entity.ServiceOrder) error
}
