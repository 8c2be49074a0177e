package entity

import "time"

// Supplier representa un proveedor de repuestos.
type Supplier struct {
	ID        string
	Document  string // NIT
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
