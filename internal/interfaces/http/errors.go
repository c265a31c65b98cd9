package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/farm-ledger/internal/application/dto"
	"github.com/agrovida/farm-ledger/internal/domain"
)

// ledgerError traduce la taxonomía del ledger a HTTP. Las fallas de validación
// van en 4xx; ErrStoreUnavailable es la única reintentar-able y va en 503.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: "cantidad insuficiente"})
	case errors.Is(err, domain.ErrUnitMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNIT_MISMATCH", Message: "unidades de medida incompatibles"})
	case errors.Is(err, domain.ErrCommodityMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMMODITY_MISMATCH", Message: "productos incompatibles"})
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE_TRANSITION", Message: "transición de estado inválida"})
	case errors.Is(err, domain.ErrReservationMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESERVATION_MISMATCH", Message: "la reserva no corresponde a la orden indicada"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén de datos no disponible"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
