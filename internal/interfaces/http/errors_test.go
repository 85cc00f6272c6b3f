package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	apphttp "github.com/jhoicas/gasagency-backoffice/internal/interfaces/http"
	"github.com/jhoicas/gasagency-backoffice/pkg/debounce"
)

func TestMapError(t *testing.T) {
	verrs := validation.NewErrors()
	verrs.Add("amount", "es obligatorio")

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", fmt.Errorf("venta: %w", verrs), http.StatusBadRequest, "VALIDATION"},
		{"sobrepago", ledger.CheckPayment(decimal.NewFromInt(1500), decimal.NewFromInt(1000)), http.StatusUnprocessableEntity, "OVERPAYMENT"},
		{"envío en curso", domain.ErrSubmitInProgress, http.StatusConflict, "SUBMIT_IN_PROGRESS"},
		{"sesión expirada", fmt.Errorf("%w: refresh 401", domain.ErrSessionExpired), http.StatusUnauthorized, "SESSION_EXPIRED"},
		{"búsqueda reemplazada", debounce.ErrSuperseded, http.StatusConflict, "SUPERSEDED"},
		{"no editable", domain.ErrNotEditable, http.StatusUnprocessableEntity, "NOT_EDITABLE"},
		{"backend 409", &domain.APIError{Status: 409, Details: "el teléfono ya existe"}, http.StatusConflict, "CONFLICT"},
		{"backend 503", &domain.APIError{Status: 503}, http.StatusServiceUnavailable, "SERVICE_BUSY"},
		{"backend sin respuesta", &domain.APIError{Status: 0}, http.StatusBadGateway, "NETWORK"},
		{"backend 500", &domain.APIError{Status: 500}, http.StatusBadGateway, "UPSTREAM"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		{"desconocido", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := apphttp.MapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestMapError_DetallesDeValidacion(t *testing.T) {
	verrs := validation.NewErrors()
	verrs.Add("paymentModeId", "es obligatorio si hay monto recibido")
	_, body := apphttp.MapError(verrs)
	assert.Equal(t, []string{"es obligatorio si hay monto recibido"}, body.Details["paymentModeId"])
}

func TestMapError_SobrepagoIncluyeSaldo(t *testing.T) {
	_, body := apphttp.MapError(ledger.CheckPayment(decimal.NewFromInt(1500), decimal.NewFromInt(1000)))
	assert.Contains(t, body.Message, "1000.00")
}

func TestMapError_Backend400MuestraDetalle(t *testing.T) {
	_, body := apphttp.MapError(&domain.APIError{Status: 400, Details: "El teléfono ya existe", RequestID: "r-1"})
	assert.Equal(t, "El teléfono ya existe", body.Message)
	assert.Equal(t, "r-1", body.RequestID)
}

func TestMapError_InternoNoFiltraDetalle(t *testing.T) {
	_, body := apphttp.MapError(errors.New("pq: conexión rechazada 10.0.0.3"))
	assert.Equal(t, "error interno", body.Message)
}
