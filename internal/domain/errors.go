package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrNetwork          = errors.New("no se pudo conectar con el servidor")
	ErrServiceBusy      = errors.New("el sistema está ocupado, intente más tarde")
	ErrSessionExpired   = errors.New("sesión expirada, inicie sesión nuevamente")
	ErrOverpayment      = errors.New("el pago excede el saldo pendiente")
	ErrSubmitInProgress = errors.New("ya hay un envío en curso para este formulario")
	ErrNotEditable      = errors.New("la entrada del ledger ya no es editable")
	ErrUpstream         = errors.New("error del servidor")
)

// APIError representa una respuesta de error del backend autoritativo.
// Status 0 indica fallo de transporte (sin respuesta HTTP).
type APIError struct {
	Status    int
	Code      string
	Message   string
	Details   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := e.Details
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = e.sentinel().Error()
	}
	if e.Status == 0 {
		return "backend: " + msg
	}
	return fmt.Sprintf("backend %d: %s", e.Status, msg)
}

// Unwrap permite errors.Is(err, domain.ErrConflict) y similares según el status HTTP.
func (e *APIError) Unwrap() error {
	return e.sentinel()
}

// UserMessage es el texto que se muestra al usuario: el mensaje del servidor en
// validaciones (400) y el texto genérico del sentinel en el resto.
func (e *APIError) UserMessage() string {
	if e.Status == http.StatusBadRequest || e.Status == http.StatusConflict {
		if e.Details != "" {
			return e.Details
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return e.sentinel().Error()
}

func (e *APIError) sentinel() error {
	switch e.Status {
	case 0:
		return ErrNetwork
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusServiceUnavailable:
		return ErrServiceBusy
	default:
		return ErrUpstream
	}
}
