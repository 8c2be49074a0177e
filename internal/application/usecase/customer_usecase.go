package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes y sus vehículos.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, vehicleRepo repository.VehicleRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, vehicleRepo: vehicleRepo}
}

// Create crea un cliente. Document (cédula/NIT) es único.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if in.Document == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.customerRepo.GetByDocument(in.Document)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Document:  in.Document,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*entity.Customer, error) {
	return uc.customerRepo.GetByID(id)
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]*entity.Customer, error) {
	return uc.customerRepo.List(limit, offset)
}

// AddVehicle registra un vehículo del cliente. La placa es única.
func (uc *CustomerUseCase) AddVehicle(customerID string, in dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	if in.Plate == "" || in.Brand == "" || in.Model == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.vehicleRepo.GetByPlate(in.Plate)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Plate:      in.Plate,
		Brand:      in.Brand,
		Model:      in.Model,
		Year:       in.Year,
		Color:      in.Color,
		Mileage:    in.Mileage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicleByPlate busca un vehículo por placa (búsqueda de mostrador).
func (uc *CustomerUseCase) GetVehicleByPlate(plate string) (*entity.Vehicle, error) {
	if plate == "" {
		return nil, domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicleRepo.GetByPlate(plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return vehicle, nil
}

// ListVehicles lista los vehículos de un cliente.
func (uc *CustomerUseCase) ListVehicles(customerID string) ([]*entity.Vehicle, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.vehicleRepo.ListByCustomer(customerID)
}
