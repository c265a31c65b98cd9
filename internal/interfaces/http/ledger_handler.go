package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/farm-ledger/internal/application/dto"
	"github.com/agrovida/farm-ledger/internal/application/ledger"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
)

// LedgerHandler maneja las peticiones HTTP del libro de inventario (protegido).
// Llega aquí ya autorizado: el motor recibe organizationID y userID del token.
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// CreateBatch godoc
// @Summary      Ingresar un lote al inventario
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "commodity_id, quantity, unit, location"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches [post]
func (h *LedgerHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.CreateBatch(c.Context(), ledger.CreateBatchInput{
		OrganizationID: GetOrganizationID(c),
		ActorID:        GetUserID(c),
		CommodityID:    in.CommodityID,
		FarmID:         in.FarmID,
		HarvestID:      in.HarvestID,
		Quantity:       in.Quantity,
		Unit:           in.Unit,
		Location:       in.Location,
		Quality:        in.Quality,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}

// ListBatches godoc
// @Summary      Listar lotes de la organización
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/ledger/batches [get]
func (h *LedgerHandler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.uc.ListBatches(c.Context(), GetOrganizationID(c), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return c.JSON(out)
}

// GetBatch godoc
// @Summary      Consultar un lote
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "batch id"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id} [get]
func (h *LedgerHandler) GetBatch(c *fiber.Ctx) error {
	batch, err := h.uc.GetBatch(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Adjust godoc
// @Summary      Ajustar la cantidad de un lote (merma, recuento, disposición)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "batch id"
// @Param        body  body  dto.AdjustRequest  true  "delta (positivo o negativo), reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/adjust [post]
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Adjust(c.Context(), GetOrganizationID(c), c.Params("id"), in.Delta, in.Reason, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Reserve godoc
// @Summary      Reservar un lote para una orden (hold, no retiro)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "batch id"
// @Param        body  body  dto.ReserveRequest  true  "quantity, order_id, expiry"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/reserve [post]
func (h *LedgerHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Reserve(c.Context(), GetOrganizationID(c), c.Params("id"), in.Quantity, in.OrderID, in.Expiry, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Release godoc
// @Summary      Liberar la reserva de un lote
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "batch id"
// @Param        body  body  dto.ReleaseRequest  true  "order_id, reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/release [post]
func (h *LedgerHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Release(c.Context(), GetOrganizationID(c), c.Params("id"), in.OrderID, in.Reason, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Transfer godoc
// @Summary      Trasladar cantidad a otra ubicación (crea lote nuevo)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "source batch id"
// @Param        body  body  dto.TransferRequest  true  "quantity, destination_location"
// @Success      201   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/transfer [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.Transfer(c.Context(), GetOrganizationID(c), c.Params("id"), in.Quantity, in.DestinationLocation, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(created))
}

// Merge godoc
// @Summary      Consolidar otro lote dentro de este (el origen queda consumido)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "target batch id"
// @Param        body  body  dto.MergeRequest  true  "source_batch_id, reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/merge [post]
func (h *LedgerHandler) Merge(c *fiber.Ctx) error {
	var in dto.MergeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	target, err := h.uc.Merge(c.Context(), GetOrganizationID(c), in.SourceBatchID, c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(target))
}

// Split godoc
// @Summary      Dividir un lote en porciones hacia otras ubicaciones
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "source batch id"
// @Param        body  body  dto.SplitRequest  true  "splits: [{quantity, destination_location}]"
// @Success      200   {object}  dto.SplitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/split [post]
func (h *LedgerHandler) Split(c *fiber.Ctx) error {
	var in dto.SplitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entries := make([]ledger.SplitEntry, 0, len(in.Splits))
	for _, s := range in.Splits {
		entries = append(entries, ledger.SplitEntry{
			Quantity:            s.Quantity,
			DestinationLocation: s.DestinationLocation,
		})
	}
	res, err := h.uc.Split(c.Context(), GetOrganizationID(c), c.Params("id"), entries, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	out := dto.SplitResponse{Source: toBatchResponse(res.Source)}
	for _, b := range res.Created {
		out.Created = append(out.Created, toBatchResponse(b))
	}
	return c.JSON(out)
}

// QualityTest godoc
// @Summary      Registrar una prueba de calidad sobre un lote
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "batch id"
// @Param        body  body  dto.QualityTestRequest  true  "grade, notes"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/quality-test [post]
func (h *LedgerHandler) QualityTest(c *fiber.Ctx) error {
	var in dto.QualityTestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.RecordQualityTest(c.Context(), GetOrganizationID(c), c.Params("id"), in.Grade, in.Notes, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Expire godoc
// @Summary      Marcar un lote como vencido (terminal)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "batch id"
// @Param        body  body  dto.ExpireRequest  true  "reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/expire [post]
func (h *LedgerHandler) Expire(c *fiber.Ctx) error {
	var in dto.ExpireRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Expire(c.Context(), GetOrganizationID(c), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Movements godoc
// @Summary      Historial de movimientos de un lote (orden cronológico)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "batch id"
// @Success      200  {array}   dto.MovementEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/movements [get]
func (h *LedgerHandler) Movements(c *fiber.Ctx) error {
	events, err := h.uc.Movements(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.MovementEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	return c.JSON(out)
}

// Traceability godoc
// @Summary      Cadena de procedencia de un lote (splits, merges, traslados, calidad)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "batch id"
// @Success      200  {object}  dto.TraceabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/batches/{id}/traceability [get]
func (h *LedgerHandler) Traceability(c *fiber.Ctx) error {
	report, err := h.uc.Traceability(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	out := dto.TraceabilityResponse{
		Chain: make([]dto.MovementEventResponse, 0, len(report.Chain)),
		Summary: dto.TraceabilitySummaryResponse{
			TotalEvents:      report.Summary.TotalEvents,
			MergeCount:       report.Summary.MergeCount,
			SplitCount:       report.Summary.SplitCount,
			QualityTestCount: report.Summary.QualityTestCount,
			FirstEventAt:     report.Summary.FirstEventAt,
			LastEventAt:      report.Summary.LastEventAt,
		},
	}
	for _, ev := range report.Chain {
		out.Chain = append(out.Chain, toEventResponse(ev))
	}
	return c.JSON(out)
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	out := dto.BatchResponse{
		ID:             b.ID,
		OrganizationID: b.OrganizationID,
		FarmID:         b.FarmID,
		CommodityID:    b.CommodityID,
		HarvestID:      b.HarvestID,
		Quantity:       b.Quantity,
		Unit:           b.Unit,
		Status:         b.Status,
		Location:       b.Location,
		Quality:        b.Quality,
		Metadata:       b.Metadata,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if b.Reservation != nil {
		out.Reservation = &dto.ReservationResponse{
			OrderID:  b.Reservation.OrderID,
			Quantity: b.Reservation.Quantity,
			Expiry:   b.Reservation.Expiry,
		}
	}
	return out
}

func toEventResponse(ev *entity.MovementEvent) dto.MovementEventResponse {
	return dto.MovementEventResponse{
		ID:        ev.ID,
		Timestamp: ev.Timestamp,
		ActorID:   ev.ActorID,
		Kind:      ev.Kind,
		BatchIDs:  ev.BatchIDs,
		Payload:   ev.Payload,
	}
}
