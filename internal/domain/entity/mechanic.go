package entity

import "time"

// Mechanic representa un mecánico del taller.
type Mechanic struct {
	ID        string
	Name      string
	Specialty string // ej. "motor", "frenos", "eléctrico"
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
