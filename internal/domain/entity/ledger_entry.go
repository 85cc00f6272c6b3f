package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefType origen de una entrada del ledger de cilindros del cliente.
type RefType string

const (
	RefTypeSale         RefType = "SALE"
	RefTypeEmptyReturn  RefType = "EMPTY_RETURN"
	RefTypePayment      RefType = "PAYMENT"
	RefTypeInitialStock RefType = "INITIAL_STOCK"
	RefTypeTransfer     RefType = "TRANSFER"
	RefTypeCredit       RefType = "CREDIT"
)

// ReducesDue indica si el tipo descuenta dinero del saldo (pago o nota de crédito).
func (t RefType) ReducesDue() bool {
	return t == RefTypePayment || t == RefTypeCredit
}

// LedgerEntry movimiento de cilindros y/o dinero de un cliente, tal como lo devuelve el backend.
// Es de solo lectura: balance y dueAmount son calculados por el servidor.
type LedgerEntry struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	CustomerName    string          `json:"customerName,omitempty"`
	VariantID       *int64          `json:"variantId"` // nil en pagos (aplican a todas las variantes)
	VariantName     string          `json:"variantName,omitempty"`
	RefType         RefType         `json:"refType"`
	RefID           int64           `json:"refId,omitempty"`
	FilledOut       int             `json:"filledOut"`
	EmptyIn         int             `json:"emptyIn"`
	Balance         int             `json:"balance"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	DueAmount       decimal.Decimal `json:"dueAmount"`
	PaymentMode     string          `json:"paymentMode,omitempty"`
	TransactionDate Date            `json:"transactionDate"`
	Notes           string          `json:"notes,omitempty"`
	UpdatedBy       string          `json:"updatedBy,omitempty"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// LedgerEntryUpdate cambios de una entrada; solo viajan los campos modificados.
type LedgerEntryUpdate struct {
	FilledOut      *int             `json:"filledOut,omitempty"`
	EmptyIn        *int             `json:"emptyIn,omitempty"`
	TotalAmount    *decimal.Decimal `json:"totalAmount,omitempty"`
	AmountReceived *decimal.Decimal `json:"amountReceived,omitempty"`
	ChangeReason   string           `json:"changeReason"`
	ChangeSummary  string           `json:"changeSummary"`
}

// IsEmpty indica que no hay ningún campo modificado.
func (u LedgerEntryUpdate) IsEmpty() bool {
	return u.FilledOut == nil && u.EmptyIn == nil && u.TotalAmount == nil && u.AmountReceived == nil
}

// CustomerDue saldo pendiente autoritativo de un cliente.
type CustomerDue struct {
	CustomerID int64           `json:"customerId"`
	DueAmount  decimal.Decimal `json:"dueAmount"`
}
