package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
)

func TestDiff_SoloCamposModificados(t *testing.T) {
	original := entity.LedgerEntry{ID: 7, FilledOut: 5, EmptyIn: 2, TotalAmount: dec("5000"), AmountReceived: dec("1000")}
	filled, empty := 6, 2
	received := dec("1500.00")

	upd, summary := ledger.Diff(original, ledger.EditableFields{
		FilledOut:      &filled,
		EmptyIn:        &empty,
		AmountReceived: &received,
	})

	require.NotNil(t, upd.FilledOut)
	assert.Equal(t, 6, *upd.FilledOut)
	assert.Nil(t, upd.EmptyIn, "el mismo valor no viaja")
	assert.Nil(t, upd.TotalAmount)
	require.NotNil(t, upd.AmountReceived)
	assert.Equal(t, "Llenos entregados: 5 → 6; Monto recibido: 1000.00 → 1500.00", summary)
}

func TestDiff_SinCambios(t *testing.T) {
	original := entity.LedgerEntry{TotalAmount: dec("100")}
	same := dec("100.00")
	upd, summary := ledger.Diff(original, ledger.EditableFields{TotalAmount: &same})
	assert.True(t, upd.IsEmpty())
	assert.Empty(t, summary)
}
