package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrovida/farm-ledger/internal/domain/entity"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del Movement Log sobre PostgreSQL: tabla tipada
// movement_events más join movement_event_batches (muchos-a-muchos con los
// lotes referenciados). Solo inserta; nunca actualiza ni borra.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const eventSelect = `
	SELECT e.id, e.timestamp, e.actor_id, e.kind, e.payload,
		(SELECT array_agg(mb.batch_id ORDER BY mb.position)
		 FROM movement_event_batches mb WHERE mb.event_id = e.id)
	FROM movement_events e`

// Append persiste un evento y sus referencias a lotes, dentro de la tx en curso.
func (r *MovementRepo) Append(event *entity.MovementEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	ctx := context.Background()
	query := `
		INSERT INTO movement_events (id, timestamp, actor_id, kind, payload)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.Timestamp, nullable(event.ActorID), event.Kind, event.Payload,
	)
	if err != nil {
		return storeErr("insert movement event", err)
	}
	joinQuery := `
		INSERT INTO movement_event_batches (event_id, batch_id, position)
		VALUES ($1, $2, $3)`
	for i, batchID := range event.BatchIDs {
		if _, err := r.q.Exec(ctx, joinQuery, event.ID, batchID, i); err != nil {
			return storeErr("insert movement event batch", err)
		}
	}
	return nil
}

// GetByID obtiene un evento por id. Devuelve nil, nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.MovementEvent, error) {
	rows, err := r.q.Query(context.Background(), eventSelect+` WHERE e.id = $1`, id)
	if err != nil {
		return nil, storeErr("get movement event", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	ev, err := scanEvent(rows)
	if err != nil {
		return nil, storeErr("scan movement event", err)
	}
	return ev, nil
}

// ListByBatch devuelve todos los eventos que referencian al lote, en orden
// cronológico ascendente. Lote sin historial: lista vacía.
func (r *MovementRepo) ListByBatch(batchID string) ([]*entity.MovementEvent, error) {
	query := eventSelect + `
		JOIN movement_event_batches ref ON ref.event_id = e.id
		WHERE ref.batch_id = $1
		ORDER BY e.timestamp ASC, e.id ASC`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, storeErr("list movements by batch", err)
	}
	defer rows.Close()
	var list []*entity.MovementEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, storeErr("scan movement event", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

type eventRow interface {
	Scan(dest ...any) error
}

func scanEvent(row eventRow) (*entity.MovementEvent, error) {
	var ev entity.MovementEvent
	var actorID *string
	if err := row.Scan(&ev.ID, &ev.Timestamp, &actorID, &ev.Kind, &ev.Payload, &ev.BatchIDs); err != nil {
		return nil, err
	}
	ev.ActorID = deref(actorID)
	return &ev, nil
}
