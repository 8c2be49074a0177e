package entity

import "time"

// Customer representa un cliente del taller.
type Customer struct {
	ID        string
	Document  string // cédula o NIT
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
