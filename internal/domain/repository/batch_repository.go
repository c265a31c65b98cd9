package repository

import "github.com/agrovida/farm-ledger/internal/domain/entity"

// BatchRepository define el puerto de persistencia del Unit Store: lectura y
// escritura cruda de cantidad, estado y ubicación de cada lote (DIP).
// Usado dentro de transacciones para garantizar consistencia.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) durante la
	// transacción en curso. Las operaciones multi-lote deben bloquear en orden
	// ascendente de id para evitar deadlocks.
	GetForUpdate(id string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Batch, error)
}
