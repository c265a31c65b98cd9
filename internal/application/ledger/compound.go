package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	domledger "github.com/agrovida/farm-ledger/internal/domain/ledger"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

// Operaciones compuestas: mueven cantidad entre varias filas del Unit Store
// dentro de una sola transacción, con la ley de conservación verificada antes
// del commit. Un solo MovementEvent referencia todos los lotes involucrados.

// Transfer mueve cantidad del lote origen a un lote nuevo en la ubicación
// destino, heredando commodity, unidad y calidad. El origen pasa a CONSUMED
// si queda en 0. Devuelve el lote nuevo.
func (uc *LedgerUseCase) Transfer(ctx context.Context, organizationID, sourceBatchID string, quantity decimal.Decimal, destinationLocation, actorID string) (*entity.Batch, error) {
	if destinationLocation == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		source, err := lockBatch(batchRepo, organizationID, sourceBatchID)
		if err != nil {
			return err
		}
		if source.Status != entity.BatchStatusAvailable {
			return domain.ErrInvalidStateTransition
		}
		if source.Quantity.LessThan(quantity) {
			return domain.ErrInsufficientQuantity
		}

		before := source.Quantity
		now := time.Now()
		source.Quantity = source.Quantity.Sub(quantity)
		source.UpdatedAt = now
		if source.Quantity.IsZero() {
			if err := domledger.Transition(source, entity.BatchStatusConsumed); err != nil {
				return err
			}
		}
		dest := derivedBatch(source, quantity, destinationLocation, now)

		if err := domledger.CheckConservation(before, domledger.SumQuantities(source, dest)); err != nil {
			return err
		}
		if err := domledger.CheckNonNegative(source, dest); err != nil {
			return err
		}
		if err := batchRepo.Update(source); err != nil {
			return err
		}
		if err := batchRepo.Create(dest); err != nil {
			return err
		}
		created = dest
		return movRepo.Append(newEvent(entity.MovementKindTRANSFER, actorID, now,
			[]string{source.ID, dest.ID},
			map[string]any{
				"source_batch_id":      source.ID,
				"destination_batch_id": dest.ID,
				"quantity":             quantity.String(),
				"from_location":        source.Location,
				"to_location":          destinationLocation,
			}))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Merge vierte todo el lote origen en el lote destino: exige commodity y
// unidad idénticos; el origen queda en 0 y CONSUMED. Devuelve el destino
// actualizado. Ambas filas se bloquean en orden ascendente de id para evitar
// deadlock entre merges concurrentes sobre los mismos lotes.
func (uc *LedgerUseCase) Merge(ctx context.Context, organizationID, sourceBatchID, targetBatchID, reason, actorID string) (*entity.Batch, error) {
	if sourceBatchID == "" || targetBatchID == "" || sourceBatchID == targetBatchID {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		locked, err := lockBatches(batchRepo, organizationID, sourceBatchID, targetBatchID)
		if err != nil {
			return err
		}
		source, target := locked[sourceBatchID], locked[targetBatchID]
		if source.Status != entity.BatchStatusAvailable || target.Status != entity.BatchStatusAvailable {
			return domain.ErrInvalidStateTransition
		}
		if source.CommodityID != target.CommodityID {
			return domain.ErrCommodityMismatch
		}
		if source.Unit != target.Unit {
			return domain.ErrUnitMismatch
		}

		before := domledger.SumQuantities(source, target)
		moved := source.Quantity
		now := time.Now()
		target.Quantity = target.Quantity.Add(moved)
		target.UpdatedAt = now
		source.Quantity = decimal.Zero
		source.UpdatedAt = now
		if err := domledger.Transition(source, entity.BatchStatusConsumed); err != nil {
			return err
		}

		if err := domledger.CheckConservation(before, domledger.SumQuantities(source, target)); err != nil {
			return err
		}
		if err := batchRepo.Update(source); err != nil {
			return err
		}
		if err := batchRepo.Update(target); err != nil {
			return err
		}
		result = target
		return movRepo.Append(newEvent(entity.MovementKindMERGE, actorID, now,
			[]string{source.ID, target.ID},
			map[string]any{
				"source_batch_id": source.ID,
				"target_batch_id": target.ID,
				"quantity":        moved.String(),
				"reason":          reason,
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SplitEntry una porción a separar del lote origen.
type SplitEntry struct {
	Quantity            decimal.Decimal
	DestinationLocation string
}

// SplitResult lote origen actualizado más los lotes creados.
type SplitResult struct {
	Source  *entity.Batch
	Created []*entity.Batch
}

// Split separa el lote origen en una o más porciones, cada una como lote
// nuevo en su ubicación destino, heredando commodity, unidad y calidad.
// La suma de las porciones no puede exceder la cantidad del origen; si la
// agota, el origen pasa a CONSUMED. Un solo evento SPLIT referencia al origen
// y a todos los lotes creados.
func (uc *LedgerUseCase) Split(ctx context.Context, organizationID, sourceBatchID string, entries []SplitEntry, actorID string) (*SplitResult, error) {
	if len(entries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, e := range entries {
		if !e.Quantity.GreaterThan(decimal.Zero) || e.DestinationLocation == "" {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(e.Quantity)
	}

	var result *SplitResult
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		source, err := lockBatch(batchRepo, organizationID, sourceBatchID)
		if err != nil {
			return err
		}
		if source.Status != entity.BatchStatusAvailable {
			return domain.ErrInvalidStateTransition
		}
		if source.Quantity.LessThan(total) {
			return domain.ErrInsufficientQuantity
		}

		before := source.Quantity
		now := time.Now()
		source.Quantity = source.Quantity.Sub(total)
		source.UpdatedAt = now
		if source.Quantity.IsZero() {
			if err := domledger.Transition(source, entity.BatchStatusConsumed); err != nil {
				return err
			}
		}

		created := make([]*entity.Batch, 0, len(entries))
		batchIDs := []string{source.ID}
		parts := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			child := derivedBatch(source, e.Quantity, e.DestinationLocation, now)
			created = append(created, child)
			batchIDs = append(batchIDs, child.ID)
			parts = append(parts, map[string]any{
				"batch_id": child.ID,
				"quantity": e.Quantity.String(),
				"location": e.DestinationLocation,
			})
		}

		all := append([]*entity.Batch{source}, created...)
		if err := domledger.CheckConservation(before, domledger.SumQuantities(all...)); err != nil {
			return err
		}
		if err := domledger.CheckNonNegative(all...); err != nil {
			return err
		}
		if err := batchRepo.Update(source); err != nil {
			return err
		}
		for _, child := range created {
			if err := batchRepo.Create(child); err != nil {
				return err
			}
		}
		result = &SplitResult{Source: source, Created: created}
		return movRepo.Append(newEvent(entity.MovementKindSPLIT, actorID, now,
			batchIDs,
			map[string]any{
				"source_batch_id": source.ID,
				"total_quantity":  total.String(),
				"splits":          parts,
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// derivedBatch crea un lote hijo que hereda procedencia, commodity, unidad y
// calidad del padre, con cantidad y ubicación propias.
func derivedBatch(parent *entity.Batch, quantity decimal.Decimal, location string, now time.Time) *entity.Batch {
	return &entity.Batch{
		ID:             uuid.New().String(),
		OrganizationID: parent.OrganizationID,
		FarmID:         parent.FarmID,
		CommodityID:    parent.CommodityID,
		HarvestID:      parent.HarvestID,
		Quantity:       quantity,
		Unit:           parent.Unit,
		Status:         entity.BatchStatusAvailable,
		Location:       location,
		Quality:        parent.Quality,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// lockBatches bloquea varias filas en orden ascendente de id (orden fijo para
// evitar deadlock entre operaciones concurrentes sobre conjuntos solapados).
func lockBatches(batchRepo repository.BatchRepository, organizationID string, ids ...string) (map[string]*entity.Batch, error) {
	ordered := append([]string(nil), ids...)
	sort.Strings(ordered)
	locked := make(map[string]*entity.Batch, len(ordered))
	for _, id := range ordered {
		b, err := lockBatch(batchRepo, organizationID, id)
		if err != nil {
			return nil, err
		}
		locked[id] = b
	}
	return locked, nil
}
