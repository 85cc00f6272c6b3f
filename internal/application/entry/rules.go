package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
)

// Formularios.
const (
	FormSale        = "sale"
	FormEmptyReturn = "empty-return"
	FormExpense     = "expense"
	FormBankDeposit = "bank-deposit"
	FormPayment     = "payment"
)

// settlement campos de cobro comunes a todos los formularios.
type settlement struct {
	Amount          decimal.Decimal
	PaymentModeID   *int64
	BankAccountID   *int64
	ReferenceNumber string
	// Mode modo de pago resuelto contra la lista activa; nil si no se eligió o no existe.
	Mode *entity.PaymentMode
}

func (s settlement) hasMoney() bool { return s.Amount.IsPositive() }

// settlementRules reglas dependientes del modo de pago. required indica si el modo es obligatorio
// aunque no haya monto (gasto, pago). Con amountField vacío no se agrega la regla de no negativo.
func settlementRules[S any](get func(S) settlement, amountField string, required bool) validation.Table[S] {
	needsMode := func(st S) bool { return required || get(st).hasMoney() }
	var t validation.Table[S]
	if amountField != "" {
		t = append(t, validation.Rule[S]{Field: amountField, Check: func(st S) string {
			if get(st).Amount.IsNegative() {
				return "no puede ser negativo"
			}
			return ""
		}})
	}
	return append(t, validation.Table[S]{
		{Field: "paymentModeId", When: needsMode, Check: func(st S) string {
			if get(st).PaymentModeID == nil {
				return "es obligatorio"
			}
			return ""
		}},
		{Field: "paymentModeId", When: func(st S) bool { return get(st).PaymentModeID != nil }, Check: func(st S) string {
			if get(st).Mode == nil {
				return "modo de pago inactivo o inexistente"
			}
			return ""
		}},
		{Field: "bankAccountId", When: func(st S) bool {
			m := get(st).Mode
			return needsMode(st) && m != nil && m.RequiresBankAccount
		}, Check: func(st S) string {
			if get(st).BankAccountID == nil {
				return "es obligatorio para el modo de pago " + get(st).Mode.Name
			}
			return ""
		}},
		{Field: "referenceNumber", When: func(st S) bool {
			m := get(st).Mode
			return needsMode(st) && m != nil && m.RequiresReference
		}, Check: func(st S) string {
			if strings.TrimSpace(get(st).ReferenceNumber) == "" {
				return "es obligatorio para el modo de pago " + get(st).Mode.Name
			}
			return ""
		}},
	}...)
}

func notInFuture(d entity.Date, today time.Time) string {
	if d.IsZero() {
		return "es obligatorio"
	}
	if d.After(today) {
		return "no puede ser una fecha futura"
	}
	return ""
}

func positive(v decimal.Decimal) string {
	if !v.IsPositive() {
		return "debe ser mayor que 0"
	}
	return ""
}

// ── Venta ─────────────────────────────────────────────────────────────────────

// SaleState estado del formulario de venta.
type SaleState struct {
	Sale     entity.Sale
	Mode     *entity.PaymentMode
	Eligible map[int64]bool // nil = sin restricción
	Today    time.Time
}

func saleSettlement(s SaleState) settlement {
	return settlement{
		Amount: s.Sale.AmountReceived, PaymentModeID: s.Sale.PaymentModeID, BankAccountID: s.Sale.BankAccountID,
		ReferenceNumber: s.Sale.ReferenceNumber, Mode: s.Mode,
	}
}

// SaleTotal suma de las líneas (llenos × precio final).
func SaleTotal(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

// SaleRules tabla de reglas de la venta.
var SaleRules = append(validation.Table[SaleState]{
	{Field: "saleDate", Check: func(s SaleState) string { return notInFuture(s.Sale.SaleDate, s.Today) }},
	{Field: "items", Check: func(s SaleState) string {
		seen := make(map[int64]bool, len(s.Sale.Items))
		for _, it := range s.Sale.Items {
			if seen[it.VariantID] {
				return "cada variante solo puede aparecer una vez"
			}
			seen[it.VariantID] = true
		}
		return ""
	}},
	{Field: "items", Check: func(s SaleState) string {
		for i, it := range s.Sale.Items {
			if it.FilledIssued == 0 && it.EmptyReceived == 0 {
				return fmt.Sprintf("línea %d: indique llenos entregados o vacíos recibidos", i+1)
			}
		}
		return ""
	}},
	{Field: "items", Check: func(s SaleState) string {
		for i, it := range s.Sale.Items {
			if it.BasePrice.IsNegative() || it.Discount.IsNegative() {
				return fmt.Sprintf("línea %d: precio y descuento no pueden ser negativos", i+1)
			}
			if it.Discount.GreaterThan(it.BasePrice) {
				return fmt.Sprintf("línea %d: el descuento supera el precio base", i+1)
			}
		}
		return ""
	}},
	{Field: "items", When: func(s SaleState) bool { return s.Eligible != nil }, Check: func(s SaleState) string {
		for i, it := range s.Sale.Items {
			if !s.Eligible[it.VariantID] {
				return fmt.Sprintf("línea %d: variante no habilitada para el cliente", i+1)
			}
		}
		return ""
	}},
}, settlementRules(saleSettlement, "amountReceived", false)...)

// ── Devolución de vacíos ──────────────────────────────────────────────────────

// EmptyReturnState estado del formulario de devolución.
type EmptyReturnState struct {
	Return   entity.EmptyReturn
	Mode     *entity.PaymentMode
	Eligible map[int64]bool
	Today    time.Time
}

// EmptyReturnRules tabla de reglas de la devolución de vacíos.
var EmptyReturnRules = append(validation.Table[EmptyReturnState]{
	{Field: "returnDate", Check: func(s EmptyReturnState) string { return notInFuture(s.Return.ReturnDate, s.Today) }},
	{Field: "emptyIn", Check: func(s EmptyReturnState) string {
		if s.Return.EmptyIn <= 0 {
			return "debe ser mayor que 0"
		}
		return ""
	}},
	{Field: "variantId", When: func(s EmptyReturnState) bool { return s.Eligible != nil }, Check: func(s EmptyReturnState) string {
		if !s.Eligible[s.Return.VariantID] {
			return "variante no habilitada para el cliente"
		}
		return ""
	}},
}, settlementRules(func(s EmptyReturnState) settlement {
	return settlement{
		Amount: s.Return.AmountReceived, PaymentModeID: s.Return.PaymentModeID,
		BankAccountID: s.Return.BankAccountID, Mode: s.Mode,
	}
}, "amountReceived", false)...)

// ── Gasto ─────────────────────────────────────────────────────────────────────

// ExpenseState estado del formulario de gasto.
type ExpenseState struct {
	Expense entity.Expense
	Mode    *entity.PaymentMode
	Today   time.Time
}

// ExpenseRules tabla de reglas del gasto.
var ExpenseRules = append(validation.Table[ExpenseState]{
	{Field: "expenseDate", Check: func(s ExpenseState) string { return notInFuture(s.Expense.ExpenseDate, s.Today) }},
	{Field: "amount", Check: func(s ExpenseState) string { return positive(s.Expense.Amount) }},
}, settlementRules(func(s ExpenseState) settlement {
	return settlement{
		Amount: s.Expense.Amount, PaymentModeID: s.Expense.PaymentModeID, BankAccountID: s.Expense.BankAccountID,
		ReferenceNumber: s.Expense.ReferenceNumber, Mode: s.Mode,
	}
}, "", true)...)

// ── Depósito bancario ─────────────────────────────────────────────────────────

// BankDepositState estado del formulario de depósito.
type BankDepositState struct {
	Deposit entity.BankDeposit
	Mode    *entity.PaymentMode
	Today   time.Time
}

// BankDepositRules tabla de reglas del depósito.
var BankDepositRules = validation.Table[BankDepositState]{
	{Field: "depositDate", Check: func(s BankDepositState) string { return notInFuture(s.Deposit.DepositDate, s.Today) }},
	{Field: "amount", Check: func(s BankDepositState) string { return positive(s.Deposit.Amount) }},
	{Field: "paymentModeId", When: func(s BankDepositState) bool { return s.Deposit.PaymentModeID != nil }, Check: func(s BankDepositState) string {
		if s.Mode == nil {
			return "modo de pago inactivo o inexistente"
		}
		return ""
	}},
	{Field: "referenceNumber", When: func(s BankDepositState) bool { return s.Mode != nil && s.Mode.RequiresReference }, Check: func(s BankDepositState) string {
		if strings.TrimSpace(s.Deposit.ReferenceNumber) == "" {
			return "es obligatorio para el modo de pago " + s.Mode.Name
		}
		return ""
	}},
}

// ── Pago ──────────────────────────────────────────────────────────────────────

// PaymentState estado del formulario de pago.
type PaymentState struct {
	Payment entity.Payment
	Mode    *entity.PaymentMode
	Today   time.Time
}

// PaymentRules tabla de reglas del pago. El tope por saldo se aplica aparte con
// ledger.CheckPayment sobre el saldo más reciente.
var PaymentRules = append(validation.Table[PaymentState]{
	{Field: "paymentDate", Check: func(s PaymentState) string { return notInFuture(s.Payment.PaymentDate, s.Today) }},
	{Field: "amount", Check: func(s PaymentState) string { return positive(s.Payment.Amount) }},
}, settlementRules(func(s PaymentState) settlement {
	return settlement{
		Amount: s.Payment.Amount, PaymentModeID: s.Payment.PaymentModeID, BankAccountID: s.Payment.BankAccountID,
		ReferenceNumber: s.Payment.ReferenceNumber, Mode: s.Mode,
	}
}, "", true)...)
