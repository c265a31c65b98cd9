package entity

import "time"

// Organization representa una organización/tenant del sistema (multi-tenant).
type Organization struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
