package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	domledger "github.com/agrovida/farm-ledger/internal/domain/ledger"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

// LedgerUseCase es el motor de operaciones de cantidad del libro de
// inventario: create, adjust, reserve, release, transfer, merge, split,
// quality test y expire. Cada operación ejecuta dentro de una transacción
// (TxRunner) con bloqueo de fila (SELECT FOR UPDATE) y registra exactamente
// un MovementEvent; commit o rollback completo.
type LedgerUseCase struct {
	txRunner      TxRunner
	batchRepo     repository.BatchRepository
	movRepo       repository.MovementRepository
	commodityRepo repository.CommodityRepository
	farmRepo      repository.FarmRepository
}

// NewLedgerUseCase construye el motor del ledger.
func NewLedgerUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	movRepo repository.MovementRepository,
	commodityRepo repository.CommodityRepository,
	farmRepo repository.FarmRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		batchRepo:     batchRepo,
		movRepo:       movRepo,
		commodityRepo: commodityRepo,
		farmRepo:      farmRepo,
	}
}

// CreateBatchInput entrada para ingresar un lote al inventario
// (cosecha, compra, entrada externa).
type CreateBatchInput struct {
	OrganizationID string
	ActorID        string
	CommodityID    string
	FarmID         string // opcional
	HarvestID      string // opcional
	Quantity       decimal.Decimal
	Unit           string
	Location       string
	Quality        string
}

// CreateBatch ingresa un lote nuevo: valida catálogo y pertenencia de la
// finca, persiste el lote en AVAILABLE y registra el evento CREATE.
func (uc *LedgerUseCase) CreateBatch(ctx context.Context, in CreateBatchInput) (*entity.Batch, error) {
	if in.OrganizationID == "" || in.CommodityID == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.commodityRepo.Exists(in.CommodityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.FarmID != "" {
		belongs, err := uc.farmRepo.BelongsToOrg(in.FarmID, in.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !belongs {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		FarmID:         in.FarmID,
		CommodityID:    in.CommodityID,
		HarvestID:      in.HarvestID,
		Quantity:       in.Quantity,
		Unit:           in.Unit,
		Status:         entity.BatchStatusAvailable,
		Location:       in.Location,
		Quality:        in.Quality,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		return movRepo.Append(newEvent(entity.MovementKindCREATE, in.ActorID, now,
			[]string{batch.ID},
			map[string]any{
				"quantity": batch.Quantity.String(),
				"unit":     batch.Unit,
				"location": batch.Location,
			}))
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// GetBatch obtiene un lote por id dentro de la organización. Un lote de otro
// tenant se trata como inexistente: ErrNotFound, nunca una pista de que existe.
func (uc *LedgerUseCase) GetBatch(_ context.Context, organizationID, batchID string) (*entity.Batch, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// Adjust aplica un delta a la cantidad del lote (merma, recuento, disposición).
// Rechaza resultados negativos; si un delta negativo deja la cantidad en 0 el
// lote pasa a CONSUMED. No toca reservas: el lote debe estar AVAILABLE.
func (uc *LedgerUseCase) Adjust(ctx context.Context, organizationID, batchID string, delta decimal.Decimal, reason, actorID string) (*entity.Batch, error) {
	if delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		batch, err := lockBatch(batchRepo, organizationID, batchID)
		if err != nil {
			return err
		}
		if batch.Status != entity.BatchStatusAvailable {
			return domain.ErrInvalidStateTransition
		}
		previous := batch.Quantity
		newQty := batch.Quantity.Add(delta)
		if newQty.IsNegative() {
			return domain.ErrInsufficientQuantity
		}
		batch.Quantity = newQty
		batch.UpdatedAt = time.Now()
		if newQty.IsZero() {
			if err := domledger.Transition(batch, entity.BatchStatusConsumed); err != nil {
				return err
			}
		}
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Append(newEvent(entity.MovementKindADJUST, actorID, batch.UpdatedAt,
			[]string{batch.ID},
			map[string]any{
				"delta":             delta.String(),
				"previous_quantity": previous.String(),
				"new_quantity":      newQty.String(),
				"reason":            reason,
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reserve retiene el lote para una orden: exige AVAILABLE, cantidad
// suficiente y una expiración futura. No descuenta cantidad; la reserva es un
// hold, no un retiro.
func (uc *LedgerUseCase) Reserve(ctx context.Context, organizationID, batchID string, quantity decimal.Decimal, orderID string, expiry time.Time, actorID string) (*entity.Batch, error) {
	if orderID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if expiry.IsZero() || !expiry.After(time.Now()) {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		batch, err := lockBatch(batchRepo, organizationID, batchID)
		if err != nil {
			return err
		}
		if !domledger.CanTransition(batch.Status, entity.BatchStatusReserved) {
			return domain.ErrInvalidStateTransition
		}
		if batch.Quantity.LessThan(quantity) {
			return domain.ErrInsufficientQuantity
		}
		if err := domledger.Transition(batch, entity.BatchStatusReserved); err != nil {
			return err
		}
		batch.Reservation = &entity.Reservation{OrderID: orderID, Quantity: quantity, Expiry: expiry}
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Append(newEvent(entity.MovementKindRESERVE, actorID, batch.UpdatedAt,
			[]string{batch.ID},
			map[string]any{
				"order_id": orderID,
				"quantity": quantity.String(),
				"expiry":   expiry.Format(time.RFC3339),
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Release libera la reserva: exige RESERVED y que el orderId coincida con la
// reserva almacenada, si no ErrReservationMismatch. La cantidad no cambia.
func (uc *LedgerUseCase) Release(ctx context.Context, organizationID, batchID, orderID, reason, actorID string) (*entity.Batch, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		batch, err := lockBatch(batchRepo, organizationID, batchID)
		if err != nil {
			return err
		}
		if batch.Status != entity.BatchStatusReserved {
			return domain.ErrInvalidStateTransition
		}
		if batch.Reservation == nil || batch.Reservation.OrderID != orderID {
			return domain.ErrReservationMismatch
		}
		released := batch.Reservation.Quantity
		if err := domledger.Transition(batch, entity.BatchStatusAvailable); err != nil {
			return err
		}
		batch.Reservation = nil
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Append(newEvent(entity.MovementKindRELEASE, actorID, batch.UpdatedAt,
			[]string{batch.ID},
			map[string]any{
				"order_id": orderID,
				"quantity": released.String(),
				"reason":   reason,
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordQualityTest registra una prueba de calidad: actualiza el grado del
// lote y deja el evento QUALITY_TEST en el log. Rechaza lotes terminales.
func (uc *LedgerUseCase) RecordQualityTest(ctx context.Context, organizationID, batchID, grade, notes, actorID string) (*entity.Batch, error) {
	if grade == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		batch, err := lockBatch(batchRepo, organizationID, batchID)
		if err != nil {
			return err
		}
		if batch.IsTerminal() {
			return domain.ErrInvalidStateTransition
		}
		previous := batch.Quality
		batch.Quality = grade
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Append(newEvent(entity.MovementKindQUALITYTEST, actorID, batch.UpdatedAt,
			[]string{batch.ID},
			map[string]any{
				"previous_grade": previous,
				"grade":          grade,
				"notes":          notes,
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Expire marca el lote como EXPIRED (disparador externo: vencimiento,
// cuarentena sanitaria). Terminal; válido desde AVAILABLE o RESERVED.
func (uc *LedgerUseCase) Expire(ctx context.Context, organizationID, batchID, reason, actorID string) (*entity.Batch, error) {
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		batch, err := lockBatch(batchRepo, organizationID, batchID)
		if err != nil {
			return err
		}
		if err := domledger.Transition(batch, entity.BatchStatusExpired); err != nil {
			return err
		}
		batch.Reservation = nil
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Append(newEvent(entity.MovementKindEXPIRE, actorID, batch.UpdatedAt,
			[]string{batch.ID},
			map[string]any{"reason": reason}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListBatches lista los lotes de la organización, más recientes primero.
func (uc *LedgerUseCase) ListBatches(_ context.Context, organizationID string, limit, offset int) ([]*entity.Batch, error) {
	if organizationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.batchRepo.ListByOrganization(organizationID, limit, offset)
}

// Movements devuelve el historial del lote en orden cronológico ascendente.
func (uc *LedgerUseCase) Movements(ctx context.Context, organizationID, batchID string) ([]*entity.MovementEvent, error) {
	if _, err := uc.GetBatch(ctx, organizationID, batchID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByBatch(batchID)
}

// lockBatch obtiene el lote con bloqueo de fila. ErrNotFound si no existe o
// si pertenece a otra organización: el scoping multi-tenant se decide aquí,
// antes de cualquier mutación.
func lockBatch(batchRepo repository.BatchRepository, organizationID, batchID string) (*entity.Batch, error) {
	batch, err := batchRepo.GetForUpdate(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// newEvent construye una entrada del Movement Log.
func newEvent(kind, actorID string, ts time.Time, batchIDs []string, payload map[string]any) *entity.MovementEvent {
	return &entity.MovementEvent{
		ID:        uuid.New().String(),
		Timestamp: ts,
		ActorID:   actorID,
		Kind:      kind,
		BatchIDs:  batchIDs,
		Payload:   payload,
	}
}
