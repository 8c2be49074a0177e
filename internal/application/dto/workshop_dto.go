package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateVehicleRequest body para POST /api/customers/:id/vehicles.
type CreateVehicleRequest struct {
	Plate   string `json:"plate"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Color   string `json:"color,omitempty"`
	Mileage int64  `json:"mileage,omitempty"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Plate      string    `json:"plate"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	Color      string    `json:"color,omitempty"`
	Mileage    int64     `json:"mileage"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMechanicRequest body para POST /api/mechanics.
type CreateMechanicRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// MechanicResponse mecánico en respuestas.
type MechanicResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateServiceOrderPartRequest repuesto a consumir por la orden de servicio.
type CreateServiceOrderPartRequest struct {
	PartID    string          `json:"part_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // 0 = usar precio del repuesto
}

// CreateServiceOrderRequest body para POST /api/service-orders.
type CreateServiceOrderRequest struct {
	AppointmentID string                          `json:"appointment_id,omitempty"`
	VehicleID     string                          `json:"vehicle_id"`
	MechanicID    string                          `json:"mechanic_id"`
	Description   string                          `json:"description"`
	LaborCost     decimal.Decimal                 `json:"labor_cost"`
	Parts         []CreateServiceOrderPartRequest `json:"parts,omitempty"`
}

// ServiceOrderPartResponse línea de repuesto en respuestas.
type ServiceOrderPartResponse struct {
	ID        string          `json:"id"`
	PartID    string          `json:"part_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ServiceOrderResponse orden de servicio en respuestas.
type ServiceOrderResponse struct {
	ID            string                     `json:"id"`
	AppointmentID string                     `json:"appointment_id,omitempty"`
	VehicleID     string                     `json:"vehicle_id"`
	MechanicID    string                     `json:"mechanic_id"`
	Description   string                     `json:"description"`
	LaborCost     decimal.Decimal            `json:"labor_cost"`
	PartsCost     decimal.Decimal            `json:"parts_cost"`
	Total         decimal.Decimal            `json:"total"`
	Status        string                     `json:"status"`
	Parts         []ServiceOrderPartResponse `json:"parts,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}
