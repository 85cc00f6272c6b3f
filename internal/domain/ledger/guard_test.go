package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
)

func TestCheckPayment(t *testing.T) {
	due := dec("500")

	err := ledger.CheckPayment(dec("600"), due)
	assert.True(t, errors.Is(err, domain.ErrOverpayment))
	assert.Contains(t, err.Error(), "500.00", "el mensaje muestra el saldo exacto")

	assert.NoError(t, ledger.CheckPayment(dec("500"), due), "pagar exactamente el saldo es válido")
	assert.NoError(t, ledger.CheckPayment(dec("0.01"), due))
}
