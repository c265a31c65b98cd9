package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/ledger/batches.
type CreateBatchRequest struct {
	CommodityID string          `json:"commodity_id"`
	FarmID      string          `json:"farm_id,omitempty"`
	HarvestID   string          `json:"harvest_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Location    string          `json:"location,omitempty"`
	Quality     string          `json:"quality,omitempty"`
}

// AdjustRequest body para POST /api/ledger/batches/:id/adjust.
type AdjustRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason,omitempty"`
}

// ReserveRequest body para POST /api/ledger/batches/:id/reserve.
type ReserveRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	OrderID  string          `json:"order_id"`
	Expiry   time.Time       `json:"expiry"`
}

// ReleaseRequest body para POST /api/ledger/batches/:id/release.
type ReleaseRequest struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason,omitempty"`
}

// TransferRequest body para POST /api/ledger/batches/:id/transfer.
type TransferRequest struct {
	Quantity            decimal.Decimal `json:"quantity"`
	DestinationLocation string          `json:"destination_location"`
}

// MergeRequest body para POST /api/ledger/batches/:id/merge.
// El :id de la ruta es el lote destino; SourceBatchID es el que se vierte.
type MergeRequest struct {
	SourceBatchID string `json:"source_batch_id"`
	Reason        string `json:"reason,omitempty"`
}

// SplitEntryRequest una porción dentro de un split.
type SplitEntryRequest struct {
	Quantity            decimal.Decimal `json:"quantity"`
	DestinationLocation string          `json:"destination_location"`
}

// SplitRequest body para POST /api/ledger/batches/:id/split.
type SplitRequest struct {
	Splits []SplitEntryRequest `json:"splits"`
}

// QualityTestRequest body para POST /api/ledger/batches/:id/quality-test.
type QualityTestRequest struct {
	Grade string `json:"grade"`
	Notes string `json:"notes,omitempty"`
}

// ExpireRequest body para POST /api/ledger/batches/:id/expire.
type ExpireRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ReservationResponse reserva activa en respuestas de lote.
type ReservationResponse struct {
	OrderID  string          `json:"order_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Expiry   time.Time       `json:"expiry"`
}

// BatchResponse representación HTTP de un lote.
type BatchResponse struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organization_id"`
	FarmID         string               `json:"farm_id,omitempty"`
	CommodityID    string               `json:"commodity_id"`
	HarvestID      string               `json:"harvest_id,omitempty"`
	Quantity       decimal.Decimal      `json:"quantity"`
	Unit           string               `json:"unit"`
	Status         string               `json:"status"`
	Location       string               `json:"location,omitempty"`
	Quality        string               `json:"quality,omitempty"`
	Reservation    *ReservationResponse `json:"reservation,omitempty"`
	Metadata       map[string]any       `json:"metadata,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// SplitResponse respuesta de un split: origen actualizado + lotes creados.
type SplitResponse struct {
	Source  BatchResponse   `json:"source"`
	Created []BatchResponse `json:"created"`
}

// MovementEventResponse entrada del log de movimientos en respuestas.
type MovementEventResponse struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	ActorID   string         `json:"actor_id,omitempty"`
	Kind      string         `json:"kind"`
	BatchIDs  []string       `json:"batch_ids"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// TraceabilitySummaryResponse resumen de la cadena de procedencia.
type TraceabilitySummaryResponse struct {
	TotalEvents      int        `json:"total_events"`
	MergeCount       int        `json:"merge_count"`
	SplitCount       int        `json:"split_count"`
	QualityTestCount int        `json:"quality_test_count"`
	FirstEventAt     *time.Time `json:"first_event_at,omitempty"`
	LastEventAt      *time.Time `json:"last_event_at,omitempty"`
}

// TraceabilityResponse cadena ordenada + resumen.
type TraceabilityResponse struct {
	Chain   []MovementEventResponse     `json:"chain"`
	Summary TraceabilitySummaryResponse `json:"summary"`
}
