// Package ledger contiene las proyecciones puras sobre el ledger de cilindros de un cliente.
//
// Nada aquí es fuente de verdad: balance y dueAmount los calcula el backend. Estas funciones
// solo reordenan, agregan y reconstruyen columnas derivadas para pantalla y exportación,
// sin I/O y sin modificar la entrada.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// DefaultEditableWindow número de entradas más recientes que se pueden editar.
const DefaultEditableWindow = 15

// VariantBalance balance más reciente de una variante.
type VariantBalance struct {
	VariantID   *int64 `json:"variantId"`
	VariantName string `json:"variantName"`
	EntryID     int64  `json:"entryId"`
	Balance     int    `json:"balance"`
}

// BalanceSummary resultado de MostRecentBalancePerVariant.
type BalanceSummary struct {
	ByVariant []VariantBalance `json:"byVariant"`
	// PendingFilled suma de balances positivos: cilindros llenos en poder del cliente.
	PendingFilled int `json:"pendingFilled"`
}

// MostRecentBalancePerVariant agrupa por nombre de variante, toma la entrada de mayor id de cada
// grupo (el id es monotónico) y suma solo los balances positivos. Un balance negativo o cero de
// una variante aporta cero, nunca resta. Las entradas sin variante (pagos) no participan.
func MostRecentBalancePerVariant(entries []entity.LedgerEntry) BalanceSummary {
	latest := make(map[string]entity.LedgerEntry)
	for _, e := range entries {
		if e.VariantName == "" {
			continue
		}
		if cur, ok := latest[e.VariantName]; !ok || e.ID > cur.ID {
			latest[e.VariantName] = e
		}
	}

	out := BalanceSummary{ByVariant: make([]VariantBalance, 0, len(latest))}
	for name, e := range latest {
		out.ByVariant = append(out.ByVariant, VariantBalance{
			VariantID:   e.VariantID,
			VariantName: name,
			EntryID:     e.ID,
			Balance:     e.Balance,
		})
		if e.Balance > 0 {
			out.PendingFilled += e.Balance
		}
	}
	sort.Slice(out.ByVariant, func(i, j int) bool {
		return out.ByVariant[i].VariantName < out.ByVariant[j].VariantName
	})
	return out
}

// SortForDisplay devuelve una copia ordenada por fecha descendente; a igual fecha, id descendente.
func SortForDisplay(entries []entity.LedgerEntry) []entity.LedgerEntry {
	out := append([]entity.LedgerEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TransactionDate.Equal(b.TransactionDate.Time) {
			return a.TransactionDate.After(b.TransactionDate.Time)
		}
		return a.ID > b.ID
	})
	return out
}

// SortForRunningBalance devuelve una copia en el orden en que ocurrieron las transacciones:
// fecha ascendente y, a igual fecha, id ascendente.
func SortForRunningBalance(entries []entity.LedgerEntry) []entity.LedgerEntry {
	out := append([]entity.LedgerEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TransactionDate.Equal(b.TransactionDate.Time) {
			return a.TransactionDate.Before(b.TransactionDate.Time)
		}
		return a.ID < b.ID
	})
	return out
}

// RunningLine fila de exportación con el saldo acumulado derivado.
type RunningLine struct {
	Entry   entity.LedgerEntry
	RowDue  decimal.Decimal
	Running decimal.Decimal
}

// RunningBalance reproduce el saldo acumulado en orden cronológico: PAYMENT y CREDIT restan
// amountReceived, el resto suma totalAmount. Es un valor de exportación para contrastar con el
// dueAmount del servidor; no se escribe de vuelta.
func RunningBalance(entries []entity.LedgerEntry) ([]RunningLine, decimal.Decimal) {
	sorted := SortForRunningBalance(entries)
	lines := make([]RunningLine, 0, len(sorted))
	running := decimal.Zero
	for _, e := range sorted {
		if e.RefType.ReducesDue() {
			running = running.Sub(e.AmountReceived)
		} else {
			running = running.Add(e.TotalAmount)
		}
		lines = append(lines, RunningLine{Entry: e, RowDue: RowDueAmount(e), Running: running})
	}
	return lines, running
}

// RowDueAmount max(0, totalAmount - amountReceived). Un sobrepago no se muestra como saldo
// negativo en la fila; se absorbe en el dueAmount acumulado del servidor.
func RowDueAmount(e entity.LedgerEntry) decimal.Decimal {
	d := e.TotalAmount.Sub(e.AmountReceived)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// EditableFrom primer índice (en orden ascendente) que todavía se puede editar.
func EditableFrom(total, window int) int {
	if window <= 0 {
		window = DefaultEditableWindow
	}
	if total-window < 0 {
		return 0
	}
	return total - window
}

// IsEditable indica si la entrada en la posición index del listado ascendente completo
// está dentro de las últimas window entradas.
func IsEditable(index, total, window int) bool {
	return index >= EditableFrom(total, window) && index < total
}

// Totals agregados de un conjunto de entradas.
type Totals struct {
	FilledOut      int             `json:"filledOut"`
	EmptyIn        int             `json:"emptyIn"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	// DueAmount es el dueAmount del servidor en la entrada más reciente, no una suma.
	DueAmount decimal.Decimal `json:"dueAmount"`
}

// ComputeTotals suma movimientos e importes y toma el dueAmount de la entrada más reciente.
func ComputeTotals(entries []entity.LedgerEntry) Totals {
	t := Totals{TotalAmount: decimal.Zero, AmountReceived: decimal.Zero, DueAmount: decimal.Zero}
	for _, e := range entries {
		t.FilledOut += e.FilledOut
		t.EmptyIn += e.EmptyIn
		t.TotalAmount = t.TotalAmount.Add(e.TotalAmount)
		t.AmountReceived = t.AmountReceived.Add(e.AmountReceived)
	}
	t.DueAmount = LatestDue(entries)
	return t
}

// LatestDue dueAmount de la entrada más reciente según (fecha, id); cero si no hay entradas.
func LatestDue(entries []entity.LedgerEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	sorted := SortForRunningBalance(entries)
	return sorted[len(sorted)-1].DueAmount
}
