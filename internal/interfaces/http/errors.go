package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// retryAfterSeconds valor de Retry-After para errores reintentables.
const retryAfterSeconds = "1"

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrAlreadyReceived y ErrAlreadyShipped van envueltos en ErrInvalidTransition.
var errorMappings = []errorMapping{
	{domain.ErrAlreadyReceived, fiber.StatusConflict, "ALREADY_RECEIVED"},
	{domain.ErrAlreadyShipped, fiber.StatusConflict, "ALREADY_SHIPPED"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConcurrencyConflict, fiber.StatusConflict, "CONCURRENCY_CONFLICT"},
	{domain.ErrTransactionAborted, fiber.StatusServiceUnavailable, "TRANSACTION_ABORTED"},
	{domain.ErrLocationInactive, fiber.StatusConflict, "LOCATION_INACTIVE"},
	{domain.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidMovement, fiber.StatusBadRequest, "INVALID_MOVEMENT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvariantViolation, fiber.StatusInternalServerError, "INVARIANT_VIOLATION"},
}

// writeError traduce errores de dominio a respuesta HTTP. Los no mapeados se registran y
// se devuelven como 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		retryable := domain.IsRetryable(err)
		if retryable {
			c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
		}
		if m.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Str("code", m.code).Msg("error de servidor")
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error(), Retryable: retryable})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler manejador de errores de Fiber (rutas inexistentes, body demasiado grande, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
