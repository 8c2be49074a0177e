package repository

import "github.com/jcastano/taller-api/internal/domain/entity"

// MechanicRepository persistencia de mecánicos.
type MechanicRepository interface {
	Create(mechanic *entity.Mechanic) error
	GetByID(id string) (*entity.Mechanic, error)
	List(onlyActive bool) ([]*entity.Mechanic, error)
	Update(mechanic *entity.Mechanic) error
}
