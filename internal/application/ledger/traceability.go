package ledger

import (
	"context"
	"time"

	"github.com/agrovida/farm-ledger/internal/domain/entity"
)

// TraceabilitySummary resume la cadena de procedencia de un lote.
type TraceabilitySummary struct {
	TotalEvents      int
	MergeCount       int
	SplitCount       int
	QualityTestCount int
	FirstEventAt     *time.Time
	LastEventAt      *time.Time
}

// TraceabilityReport cadena ordenada de eventos más su resumen.
type TraceabilityReport struct {
	Chain   []*entity.MovementEvent
	Summary TraceabilitySummary
}

// Traceability reconstruye la cadena de procedencia del lote: todos los
// eventos del Movement Log que lo referencian (como origen, destino o lote
// creado), en orden cronológico ascendente. Lectura pura: un log vacío es una
// cadena de longitud cero, no un error.
func (uc *LedgerUseCase) Traceability(ctx context.Context, organizationID, batchID string) (*TraceabilityReport, error) {
	if _, err := uc.GetBatch(ctx, organizationID, batchID); err != nil {
		return nil, err
	}
	chain, err := uc.movRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}

	summary := TraceabilitySummary{TotalEvents: len(chain)}
	for _, ev := range chain {
		switch ev.Kind {
		case entity.MovementKindMERGE:
			summary.MergeCount++
		case entity.MovementKindSPLIT:
			summary.SplitCount++
		case entity.MovementKindQUALITYTEST:
			summary.QualityTestCount++
		}
	}
	if len(chain) > 0 {
		first := chain[0].Timestamp
		last := chain[len(chain)-1].Timestamp
		summary.FirstEventAt = &first
		summary.LastEventAt = &last
	}
	if chain == nil {
		chain = []*entity.MovementEvent{}
	}
	return &TraceabilityReport{Chain: chain, Summary: summary}, nil
}
