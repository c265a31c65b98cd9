package entity

import "time"

// Farm representa una finca de una organización (directorio; el ledger solo
// la consulta para verificar pertenencia al tenant).
type Farm struct {
	ID             string
	OrganizationID string
	Name           string
	Region         string
	AreaHectares   float64
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
