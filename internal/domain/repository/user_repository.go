package repository

import "github.com/jcastano/taller-api/internal/domain/entity"

// UserRepository persistencia de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
