package entity

import "time"

// Vehicle representa un vehículo de un cliente.
type Vehicle struct {
	ID         string
	CustomerID string
	Plate      string // placa, única
	Brand      string
	Model      string
	Year       int
	Color      string
	Mileage    int64 // kilometraje al último ingreso
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
