package repository

import "github.com/agrovida/farm-ledger/internal/domain/entity"

// MovementRepository define el puerto del Movement Log: registro append-only
// de eventos, tabla tipada con join muchos-a-muchos hacia los lotes
// referenciados. Nunca se actualiza ni borra una entrada.
type MovementRepository interface {
	Append(event *entity.MovementEvent) error
	GetByID(id string) (*entity.MovementEvent, error)
	// ListByBatch devuelve los eventos que referencian al lote, ordenados por
	// timestamp ascendente. Un lote sin historial devuelve lista vacía, no error.
	ListByBatch(batchID string) ([]*entity.MovementEvent, error)
}
