package entity

import "time"

// Tipos de evento de movimiento (append-only, nunca se mutan ni borran).
const (
	MovementKindCREATE      = "CREATE"
	MovementKindADJUST      = "ADJUST"
	MovementKindRESERVE     = "RESERVE"
	MovementKindRELEASE     = "RELEASE"
	MovementKindTRANSFER    = "TRANSFER"
	MovementKindMERGE       = "MERGE"
	MovementKindSPLIT       = "SPLIT"
	MovementKindQUALITYTEST = "QUALITY_TEST"
	MovementKindEXPIRE      = "EXPIRE"
)

// MovementEvent es una entrada inmutable del log de movimientos: un evento por
// operación, referenciando todos los lotes involucrados (origen, destino y
// lotes creados). Es la fuente de verdad para trazabilidad; el estado actual
// del lote vive en la tabla batches.
type MovementEvent struct {
	ID        string
	Timestamp time.Time
	ActorID   string   // usuario que disparó la operación
	Kind      string   // ver constantes MovementKind*
	BatchIDs  []string // todos los lotes que el evento referencia
	Payload   map[string]any
}

// References indica si el evento involucra al lote dado.
func (e *MovementEvent) References(batchID string) bool {
	for _, id := range e.BatchIDs {
		if id == batchID {
			return true
		}
	}
	return false
}
