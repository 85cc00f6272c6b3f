package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func day(d int) entity.Date { return entity.NewDate(2024, time.March, d) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func variantEntry(id int64, variant string, balance int) entity.LedgerEntry {
	return entity.LedgerEntry{ID: id, VariantName: variant, Balance: balance, RefType: entity.RefTypeSale, TransactionDate: day(1)}
}

func ids(entries []entity.LedgerEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// MostRecentBalancePerVariant
// ──────────────────────────────────────────────────────────────────────────────

func TestMostRecentBalancePerVariant_TomaMayorIdPorVariante(t *testing.T) {
	entries := []entity.LedgerEntry{
		variantEntry(1, "14.2kg", 3),
		variantEntry(4, "14.2kg", 5),
		variantEntry(2, "19kg", 2),
		variantEntry(3, "19kg", 1),
	}

	got := ledger.MostRecentBalancePerVariant(entries)

	require.Len(t, got.ByVariant, 2)
	assert.Equal(t, "14.2kg", got.ByVariant[0].VariantName)
	assert.Equal(t, int64(4), got.ByVariant[0].EntryID)
	assert.Equal(t, 5, got.ByVariant[0].Balance)
	assert.Equal(t, int64(3), got.ByVariant[1].EntryID)
	assert.Equal(t, 6, got.PendingFilled)
}

func TestMostRecentBalancePerVariant_NoSumaBalancesNegativos(t *testing.T) {
	cases := []struct {
		name     string
		balances []int
		want     int
	}{
		{"todos positivos", []int{2, 3}, 5},
		{"uno negativo", []int{4, -3}, 4},
		{"todos negativos", []int{-1, -7}, 0},
		{"ceros", []int{0, 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var entries []entity.LedgerEntry
			for i, b := range tc.balances {
				entries = append(entries, variantEntry(int64(i+1), string(rune('A'+i)), b))
			}
			got := ledger.MostRecentBalancePerVariant(entries)
			assert.Equal(t, tc.want, got.PendingFilled)
			assert.GreaterOrEqual(t, got.PendingFilled, 0)
		})
	}
}

func TestMostRecentBalancePerVariant_IgnoraPagosSinVariante(t *testing.T) {
	entries := []entity.LedgerEntry{
		variantEntry(1, "14.2kg", 2),
		{ID: 9, RefType: entity.RefTypePayment, Balance: 99},
	}
	got := ledger.MostRecentBalancePerVariant(entries)
	assert.Len(t, got.ByVariant, 1)
	assert.Equal(t, 2, got.PendingFilled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ordenamientos
// ──────────────────────────────────────────────────────────────────────────────

func TestSortForDisplay_FechaDescIdDesc(t *testing.T) {
	entries := []entity.LedgerEntry{
		{ID: 1, TransactionDate: day(1)},
		{ID: 3, TransactionDate: day(2)},
		{ID: 2, TransactionDate: day(2)},
		{ID: 4, TransactionDate: day(1)},
	}
	assert.Equal(t, []int64{3, 2, 4, 1}, ids(ledger.SortForDisplay(entries)))
	assert.Equal(t, []int64{1, 3, 2, 4}, ids(entries), "no modifica la entrada")
}

func TestSortForRunningBalance_FechaAscIdAsc(t *testing.T) {
	entries := []entity.LedgerEntry{
		{ID: 3, TransactionDate: day(2)},
		{ID: 4, TransactionDate: day(1)},
		{ID: 2, TransactionDate: day(2)},
		{ID: 1, TransactionDate: day(1)},
	}
	assert.Equal(t, []int64{1, 4, 2, 3}, ids(ledger.SortForRunningBalance(entries)))
}

// ──────────────────────────────────────────────────────────────────────────────
// RunningBalance / RowDueAmount
// ──────────────────────────────────────────────────────────────────────────────

func TestRunningBalance_ReproduceEnOrdenCronologico(t *testing.T) {
	entries := []entity.LedgerEntry{
		{ID: 2, TransactionDate: day(1), RefType: entity.RefTypePayment, AmountReceived: dec("40")},
		{ID: 1, TransactionDate: day(1), RefType: entity.RefTypeSale, TotalAmount: dec("100")},
	}

	lines, final := ledger.RunningBalance(entries)

	require.Len(t, lines, 2)
	assert.True(t, lines[0].Running.Equal(dec("100")))
	assert.True(t, final.Equal(dec("60")), "100 - 40 = 60, obtenido %s", final)
}

func TestRunningBalance_CreditoResta(t *testing.T) {
	entries := []entity.LedgerEntry{
		{ID: 1, TransactionDate: day(1), RefType: entity.RefTypeSale, TotalAmount: dec("500"), AmountReceived: dec("100")},
		{ID: 2, TransactionDate: day(2), RefType: entity.RefTypeCredit, AmountReceived: dec("50")},
		{ID: 3, TransactionDate: day(3), RefType: entity.RefTypeEmptyReturn, TotalAmount: dec("0")},
	}
	_, final := ledger.RunningBalance(entries)
	assert.True(t, final.Equal(dec("450")))
}

func TestRowDueAmount_NuncaNegativo(t *testing.T) {
	cases := []struct {
		total, received, want string
	}{
		{"100", "40", "60"},
		{"100", "100", "0"},
		{"100", "150", "0"},
		{"0", "10", "0"},
	}
	for _, tc := range cases {
		got := ledger.RowDueAmount(entity.LedgerEntry{TotalAmount: dec(tc.total), AmountReceived: dec(tc.received)})
		assert.True(t, got.Equal(dec(tc.want)), "total=%s recibido=%s → %s", tc.total, tc.received, got)
		assert.False(t, got.IsNegative())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestIsEditable_UltimasQuinceDeVeinte(t *testing.T) {
	for i := 0; i < 20; i++ {
		want := i >= 5
		assert.Equal(t, want, ledger.IsEditable(i, 20, ledger.DefaultEditableWindow), "índice %d", i)
	}
}

func TestIsEditable_MenosEntradasQueVentana(t *testing.T) {
	assert.Equal(t, 0, ledger.EditableFrom(10, 15))
	for i := 0; i < 10; i++ {
		assert.True(t, ledger.IsEditable(i, 10, 15))
	}
	assert.False(t, ledger.IsEditable(10, 10, 15), "fuera de rango")
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_DueDelServidorEnEntradaMasReciente(t *testing.T) {
	entries := []entity.LedgerEntry{
		{ID: 5, TransactionDate: day(3), FilledOut: 0, EmptyIn: 2, DueAmount: dec("700")},
		{ID: 1, TransactionDate: day(1), FilledOut: 4, TotalAmount: dec("800"), AmountReceived: dec("100"), DueAmount: dec("700")},
		{ID: 6, TransactionDate: day(3), RefType: entity.RefTypePayment, AmountReceived: dec("200"), DueAmount: dec("500")},
	}

	got := ledger.ComputeTotals(entries)

	assert.Equal(t, 4, got.FilledOut)
	assert.Equal(t, 2, got.EmptyIn)
	assert.True(t, got.TotalAmount.Equal(dec("800")))
	assert.True(t, got.AmountReceived.Equal(dec("300")))
	assert.True(t, got.DueAmount.Equal(dec("500")), "se toma el dueAmount de la entrada (día 3, id 6)")
}

func TestLatestDue_SinEntradas(t *testing.T) {
	assert.True(t, ledger.LatestDue(nil).IsZero())
}
