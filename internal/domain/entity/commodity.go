package entity

import "time"

// Commodity representa un producto agrícola del catálogo (metadata estática;
// el ledger solo lo consulta para validar existencia).
type Commodity struct {
	ID          string
	Name        string
	Category    string // grano, fruta, lácteo, café...
	DefaultUnit string // unidad sugerida al ingresar lotes
	Perishable  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
