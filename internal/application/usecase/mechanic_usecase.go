package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// MechanicUseCase casos de uso CRUD para mecánicos.
type MechanicUseCase struct {
	repo repository.MechanicRepository
}

// NewMechanicUseCase construye el caso de uso.
func NewMechanicUseCase(repo repository.MechanicRepository) *MechanicUseCase {
	return &MechanicUseCase{repo: repo}
}

// Create registra un mecánico activo.
func (uc *MechanicUseCase) Create(in dto.CreateMechanicRequest) (*entity.Mechanic, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	mechanic := &entity.Mechanic{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Specialty: in.Specialty,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(mechanic); err != nil {
		return nil, err
	}
	return mechanic, nil
}

// SetActive activa o desactiva un mecánico (los inactivos no reciben citas).
func (uc *MechanicUseCase) SetActive(id string, active bool) (*entity.Mechanic, error) {
	mechanic, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mechanic == nil {
		return nil, domain.ErrNotFound
	}
	mechanic.Active = active
	mechanic.UpdatedAt = time.Now()
	if err := uc.repo.Update(mechanic); err != nil {
		return nil, err
	}
	return mechanic, nil
}

// GetByID obtiene un mecánico por ID.
func (uc *MechanicUseCase) GetByID(id string) (*entity.Mechanic, error) {
	return uc.repo.GetByID(id)
}

// List lista mecánicos, opcionalmente solo los activos.
func (uc *MechanicUseCase) List(onlyActive bool) ([]*entity.Mechanic, error) {
	return uc.repo.List(onlyActive)
}
