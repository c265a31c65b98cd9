package ledger

import (
	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
)

// Transiciones legales del ciclo de vida de un lote:
//
//	AVAILABLE -> RESERVED   (reserva, sujeta a cantidad suficiente)
//	RESERVED  -> AVAILABLE  (release con orderId coincidente)
//	AVAILABLE -> CONSUMED   (automática cuando la cantidad llega a 0)
//	AVAILABLE -> EXPIRED    (disparador externo, terminal)
//	RESERVED  -> EXPIRED    (disparador externo, terminal)
//
// Cualquier otra transición es ilegal y no produce mutación.
var legalTransitions = map[string][]string{
	entity.BatchStatusAvailable: {entity.BatchStatusReserved, entity.BatchStatusConsumed, entity.BatchStatusExpired},
	entity.BatchStatusReserved:  {entity.BatchStatusAvailable, entity.BatchStatusExpired},
	entity.BatchStatusExpired:   {},
	entity.BatchStatusConsumed:  {},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to string) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition valida y aplica un cambio de estado sobre el lote.
// Si la transición es ilegal devuelve ErrInvalidStateTransition y no muta nada.
func Transition(b *entity.Batch, to string) error {
	if !CanTransition(b.Status, to) {
		return domain.ErrInvalidStateTransition
	}
	b.Status = to
	return nil
}
