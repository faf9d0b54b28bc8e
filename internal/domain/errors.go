package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Motor de recepción y libro de inventario.
	ErrInvalidMovement     = errors.New("movimiento de inventario inválido")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrAlreadyReceived     = errors.New("la orden de compra ya fue recibida")
	ErrAlreadyShipped      = errors.New("el despacho ya fue registrado")
	ErrLocationInactive    = errors.New("ubicación de stock inactiva")
	ErrTransactionAborted  = errors.New("transacción abortada")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia")
	ErrInvariantViolation  = errors.New("violación del invariante de inventario")
)

// IsRetryable indica si el llamador puede reintentar la operación completa desde el paso 1.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionAborted) || errors.Is(err, ErrConcurrencyConflict)
}
