package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// EditableFields valores editados por el usuario; nil = sin tocar.
type EditableFields struct {
	FilledOut      *int             `json:"filledOut,omitempty"`
	EmptyIn        *int             `json:"emptyIn,omitempty"`
	TotalAmount    *decimal.Decimal `json:"totalAmount,omitempty"`
	AmountReceived *decimal.Decimal `json:"amountReceived,omitempty"`
}

// Diff compara los valores editados contra la entrada original y devuelve solo los campos que
// cambian, junto con un resumen legible ("Llenos entregados: 5 → 6; ...").
func Diff(original entity.LedgerEntry, edited EditableFields) (entity.LedgerEntryUpdate, string) {
	var upd entity.LedgerEntryUpdate
	var parts []string

	if edited.FilledOut != nil && *edited.FilledOut != original.FilledOut {
		v := *edited.FilledOut
		upd.FilledOut = &v
		parts = append(parts, "Llenos entregados: "+strconv.Itoa(original.FilledOut)+" → "+strconv.Itoa(v))
	}
	if edited.EmptyIn != nil && *edited.EmptyIn != original.EmptyIn {
		v := *edited.EmptyIn
		upd.EmptyIn = &v
		parts = append(parts, "Vacíos recibidos: "+strconv.Itoa(original.EmptyIn)+" → "+strconv.Itoa(v))
	}
	if edited.TotalAmount != nil && !edited.TotalAmount.Equal(original.TotalAmount) {
		v := *edited.TotalAmount
		upd.TotalAmount = &v
		parts = append(parts, fmt.Sprintf("Monto total: %s → %s",
			original.TotalAmount.StringFixed(2), v.StringFixed(2)))
	}
	if edited.AmountReceived != nil && !edited.AmountReceived.Equal(original.AmountReceived) {
		v := *edited.AmountReceived
		upd.AmountReceived = &v
		parts = append(parts, fmt.Sprintf("Monto recibido: %s → %s",
			original.AmountReceived.StringFixed(2), v.StringFixed(2)))
	}
	return upd, strings.Join(parts, "; ")
}
