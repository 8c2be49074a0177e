package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/dto"
	"github.com/jcastano/taller-api/internal/application/usecase"
	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
)

// CustomerHandler maneja clientes y sus vehículos (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func toCustomerResponse(cu *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        cu.ID,
		Document:  cu.Document,
		Name:      cu.Name,
		Phone:     cu.Phone,
		Email:     cu.Email,
		Address:   cu.Address,
		CreatedAt: cu.CreatedAt,
		UpdatedAt: cu.UpdatedAt,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:         v.ID,
		CustomerID: v.CustomerID,
		Plate:      v.Plate,
		Brand:      v.Brand,
		Model:      v.Model,
		Year:       v.Year,
		Color:      v.Color,
		Mileage:    v.Mileage,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "document y name obligatorios"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. 100, por defecto 20"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	customers, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		out = append(out, toCustomerResponse(cu))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if customer == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toCustomerResponse(customer))
}

// AddVehicle godoc
// @Summary      Registrar vehículo de un cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CreateVehicleRequest  true  "plate única, brand, model, year"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/vehicles [post]
func (h *CustomerHandler) AddVehicle(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vehicle, err := h.uc.AddVehicle(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVehicleResponse(vehicle))
}

// GetVehicleByPlate godoc
// @Summary      Buscar vehículo por placa
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        plate  path  string  true  "placa del vehículo"
// @Success      200  {object}  dto.VehicleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/plate/{plate} [get]
func (h *CustomerHandler) GetVehicleByPlate(c *fiber.Ctx) error {
	vehicle, err := h.uc.GetVehicleByPlate(c.Params("plate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toVehicleResponse(vehicle))
}

// ListVehicles godoc
// @Summary      Listar vehículos de un cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.VehicleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/vehicles [get]
func (h *CustomerHandler) ListVehicles(c *fiber.Ctx) error {
	vehicles, err := h.uc.ListVehicles(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return c.JSON(out)
}
