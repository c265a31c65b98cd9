package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote (batch). EXPIRED y CONSUMED son terminales.
const (
	BatchStatusAvailable = "AVAILABLE"
	BatchStatusReserved  = "RESERVED"
	BatchStatusExpired   = "EXPIRED"
	BatchStatusConsumed  = "CONSUMED"
)

// Reservation es la retención activa de un lote para una orden concreta.
// No descuenta cantidad: es un hold, no un retiro. Se modela tipada (columnas
// propias) en lugar de un blob en metadata, para que la validación de release
// sea un match exacto y no un parseo de campos libres.
type Reservation struct {
	OrderID  string
	Quantity decimal.Decimal
	Expiry   time.Time
}

// Batch representa una cantidad discreta de un producto agrícola en una
// ubicación: la unidad atómica del libro de inventario.
// Invariantes: Quantity >= 0 siempre; Unit y CommodityID son inmutables
// después de la creación; Status == RESERVED si y solo si Reservation != nil.
type Batch struct {
	ID             string
	OrganizationID string
	FarmID         string // opcional: finca de origen
	CommodityID    string
	HarvestID      string // opcional: cosecha de origen
	Quantity       decimal.Decimal
	Unit           string // kg, lb, ton, unidad...
	Status         string // ver constantes BatchStatus*
	Location       string // identificador de bodega/silo/planta
	Quality        string // grado o etiqueta de calidad, mutable vía grading
	Reservation    *Reservation
	Metadata       map[string]any // extensiones de dominio; NO historial de movimientos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsTerminal indica si el lote está en un estado final (no admite más operaciones).
func (b *Batch) IsTerminal() bool {
	return b.Status == BatchStatusExpired || b.Status == BatchStatusConsumed
}

// Clone devuelve una copia profunda del lote (metadata y reserva incluidas).
func (b *Batch) Clone() *Batch {
	if b == nil {
		return nil
	}
	c := *b
	if b.Reservation != nil {
		r := *b.Reservation
		c.Reservation = &r
	}
	if b.Metadata != nil {
		c.Metadata = make(map[string]any, len(b.Metadata))
		for k, v := range b.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
