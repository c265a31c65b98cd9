package ledger

import (
	"context"

	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad todo-o-nada del motor
// de operaciones: cualquier error dentro de fn hace rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		movRepo repository.MovementRepository,
	) error) error
}
