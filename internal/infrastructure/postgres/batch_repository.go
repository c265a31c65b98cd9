package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del Unit Store sobre PostgreSQL (usable con pool o tx).
// La reserva activa vive en columnas propias (reservation_*), no en metadata.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, organization_id, farm_id, commodity_id, harvest_id, quantity, unit,
		status, location, quality, reservation_order_id, reservation_quantity,
		reservation_expiry, metadata, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	resOrderID, resQty, resExpiry := reservationColumns(batch.Reservation)
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.OrganizationID, nullable(batch.FarmID), batch.CommodityID,
		nullable(batch.HarvestID), batch.Quantity, batch.Unit, batch.Status,
		nullable(batch.Location), nullable(batch.Quality),
		resOrderID, resQty, resExpiry, batch.Metadata,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert batch", err)
	}
	return nil
}

// GetByID obtiene un lote por id. Devuelve nil, nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch")
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE) durante
// la transacción en curso. Devuelve nil, nil si no existe.
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch for update")
}

// Update persiste cantidad, estado, ubicación, calidad, reserva y metadata.
// Unit y CommodityID no se tocan: son inmutables después de la creación.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches
		SET quantity = $2, status = $3, location = $4, quality = $5,
			reservation_order_id = $6, reservation_quantity = $7, reservation_expiry = $8,
			metadata = $9, updated_at = $10
		WHERE id = $1`
	resOrderID, resQty, resExpiry := reservationColumns(batch.Reservation)
	tag, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Quantity, batch.Status, nullable(batch.Location),
		nullable(batch.Quality), resOrderID, resQty, resExpiry,
		batch.Metadata, batch.UpdatedAt,
	)
	if err != nil {
		return storeErr("update batch", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOrganization lista los lotes de un tenant, más recientes primero.
func (r *BatchRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, storeErr("list batches", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, storeErr("scan batch", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row, op string) (*entity.Batch, error) {
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return b, nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var farmID, harvestID, location, quality *string
	var resOrderID *string
	var resQty *decimal.Decimal
	var resExpiry *time.Time
	err := row.Scan(
		&b.ID, &b.OrganizationID, &farmID, &b.CommodityID, &harvestID,
		&b.Quantity, &b.Unit, &b.Status, &location, &quality,
		&resOrderID, &resQty, &resExpiry, &b.Metadata,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.FarmID = deref(farmID)
	b.HarvestID = deref(harvestID)
	b.Location = deref(location)
	b.Quality = deref(quality)
	if resOrderID != nil && resQty != nil && resExpiry != nil {
		b.Reservation = &entity.Reservation{OrderID: *resOrderID, Quantity: *resQty, Expiry: *resExpiry}
	}
	return &b, nil
}

func reservationColumns(res *entity.Reservation) (*string, *decimal.Decimal, *time.Time) {
	if res == nil {
		return nil, nil, nil
	}
	return &res.OrderID, &res.Quantity, &res.Expiry
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
