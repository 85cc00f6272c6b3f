package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gasagency-backoffice/pkg/money"
)

func TestFormatter_Amount(t *testing.T) {
	f := money.NewFormatter("en")

	assert.Equal(t, "1,234.50", f.Amount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", f.Amount(decimal.Zero))
	assert.Equal(t, "Rs. 60.00", f.WithSymbol(decimal.NewFromInt(60)))
	assert.Equal(t, "-Rs. 40.00", f.WithSymbol(decimal.NewFromInt(-40)))
}

func TestFormatter_EtiquetaInvalida_UsaIngles(t *testing.T) {
	f := money.NewFormatter("no es una etiqueta!!")
	assert.Equal(t, "1,000", f.Quantity(1000))
}
