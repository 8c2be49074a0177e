package repository

import "github.com/jcastano/taller-api/internal/domain/entity"

// VehicleRepository persistencia de vehículos.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	GetByPlate(plate string) (*entity.Vehicle, error)
	ListByCustomer(customerID string) ([]*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
}
