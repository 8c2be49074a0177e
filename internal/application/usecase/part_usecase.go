package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// PartUseCase casos de uso CRUD para repuestos. Stock y Cost se manejan vía
// movimientos del ledger, nunca por edición directa.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create crea un repuesto nuevo. Stock inicia en 0; las entradas van por el ledger.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*entity.Part, error) {
	if in.SKU == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) || in.MinimalStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Stock:        0,
		MinimalStock: in.MinimalStock,
		Price:        in.Price,
		Cost:         decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return part, nil
}

// Update actualiza los campos editables; Stock y Cost no se tocan aquí.
func (uc *PartUseCase) Update(id string, in dto.UpdatePartRequest) (*entity.Part, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.MinimalStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	part.Name = in.Name
	part.Description = in.Description
	part.MinimalStock = in.MinimalStock
	part.Price = in.Price
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return part, nil
}

// GetByID obtiene un repuesto por ID.
func (uc *PartUseCase) GetByID(id string) (*entity.Part, error) {
	return uc.repo.GetByID(id)
}

// List lista repuestos paginados.
func (uc *PartUseCase) List(limit, offset int) ([]*entity.Part, error) {
	return uc.repo.List(limit, offset)
}
