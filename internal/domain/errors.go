package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// Errores del libro de inventario (ledger). Todos son fallas de validación
// locales que se reportan al caller sin reintento automático; solo
// ErrStoreUnavailable amerita reintento por parte del caller.
var (
	ErrInsufficientQuantity   = errors.New("cantidad insuficiente")
	ErrUnitMismatch           = errors.New("unidades de medida incompatibles")
	ErrCommodityMismatch      = errors.New("productos incompatibles")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrReservationMismatch    = errors.New("la reserva no corresponde a la orden indicada")
	ErrStoreUnavailable       = errors.New("almacén de datos no disponible")
)
