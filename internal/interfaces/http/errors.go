package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	"github.com/jhoicas/gasagency-backoffice/pkg/debounce"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// ErrorHandler traduce cualquier error devuelto por un handler a dto.ErrorResponse.
// Es el único punto donde se decide el status HTTP de un error.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := MapError(err)
		if body.RequestID == "" {
			body.RequestID = requestID(c)
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Int("status", status).Str("path", c.Path()).Str("request_id", body.RequestID).Msg("http: error")
		}
		return c.Status(status).JSON(body)
	}
}

// MapError status y cuerpo para un error.
func MapError(err error) (int, dto.ErrorResponse) {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "hay campos con errores", Details: verrs.Fields}
	}
	var over *ledger.OverpaymentError
	if errors.As(err, &over) {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code: "OVERPAYMENT", Message: over.Error(),
			Details: map[string][]string{"amount": {over.Error()}},
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message}
	}

	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: domain.ErrSessionExpired.Error()}
	case errors.Is(err, domain.ErrSubmitInProgress):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SUBMIT_IN_PROGRESS", Message: domain.ErrSubmitInProgress.Error()}
	case errors.Is(err, debounce.ErrSuperseded):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SUPERSEDED", Message: "búsqueda reemplazada por una más reciente"}
	case errors.Is(err, domain.ErrNotEditable):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "NOT_EDITABLE", Message: domain.ErrNotEditable.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: "TIMEOUT", Message: "el servidor tardó demasiado en responder"}
	case errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout, dto.ErrorResponse{Code: "CANCELED", Message: "petición cancelada"}
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		status, code := sentinelStatus(apiErr.Unwrap())
		return status, dto.ErrorResponse{Code: code, Message: apiErr.UserMessage(), RequestID: apiErr.RequestID}
	}

	status, code := sentinelStatus(err)
	msg := "error interno"
	if status != fiber.StatusInternalServerError {
		msg = err.Error()
	}
	return status, dto.ErrorResponse{Code: code, Message: msg}
}

func sentinelStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrServiceBusy):
		return fiber.StatusServiceUnavailable, "SERVICE_BUSY"
	case errors.Is(err, domain.ErrNetwork):
		return fiber.StatusBadGateway, "NETWORK"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "UPSTREAM"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}
