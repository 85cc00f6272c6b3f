package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
)

type paymentForm struct {
	Amount        int
	PaymentModeID int64
	NeedsBank     bool
	BankAccountID int64
}

var paymentRules = validation.Table[paymentForm]{
	{Field: "amount", Check: func(f paymentForm) string {
		if f.Amount <= 0 {
			return "debe ser mayor que cero"
		}
		return ""
	}},
	{Field: "bankAccountId", When: func(f paymentForm) bool { return f.NeedsBank }, Check: func(f paymentForm) string {
		if f.BankAccountID == 0 {
			return "es obligatorio para este modo de pago"
		}
		return ""
	}},
}

func TestTable_Evaluate_ReglaCondicional(t *testing.T) {
	errs := paymentRules.Evaluate(paymentForm{Amount: 10, NeedsBank: false})
	assert.True(t, errs.Empty(), "sin banco requerido no se valida bankAccountId")

	errs = paymentRules.Evaluate(paymentForm{Amount: 10, NeedsBank: true})
	require.False(t, errs.Empty())
	assert.Contains(t, errs.Fields, "bankAccountId")
}

func TestTable_Evaluate_EsPuraYRepetible(t *testing.T) {
	state := paymentForm{Amount: 0, NeedsBank: true}
	first := paymentRules.Evaluate(state)
	second := paymentRules.Evaluate(state)
	assert.Equal(t, first.Fields, second.Fields)
	assert.Len(t, first.Fields, 2)
}

func TestErrors_EnvuelveErrInvalidInput(t *testing.T) {
	errs := validation.NewErrors()
	assert.NoError(t, errs.OrNil())

	errs.Add("amount", "debe ser mayor que cero")
	err := errs.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "validación: amount: debe ser mayor que cero", err.Error())
}

type customerForm struct {
	Name  string   `json:"name" validate:"required"`
	Items []string `json:"items" validate:"required,min=1"`
}

func TestStruct_UsaNombresJSON(t *testing.T) {
	errs := validation.Struct(customerForm{})
	require.False(t, errs.Empty())
	assert.Contains(t, errs.Fields, "name")
	assert.Contains(t, errs.Fields, "items")

	assert.True(t, validation.Struct(customerForm{Name: "Ravi", Items: []string{"a"}}).Empty())
}
