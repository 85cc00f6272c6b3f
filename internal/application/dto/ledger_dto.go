package dto

import "github.com/shopspring/decimal"

// UpdateLedgerEntryRequest corrección de una entrada del ledger. Los campos omitidos conservan
// el valor actual.
type UpdateLedgerEntryRequest struct {
	FilledOut      *int             `json:"filledOut"`
	EmptyIn        *int             `json:"emptyIn"`
	TotalAmount    *decimal.Decimal `json:"totalAmount"`
	AmountReceived *decimal.Decimal `json:"amountReceived"`
	ChangeReason   string           `json:"changeReason"`
}

// DueResponse saldo pendiente autoritativo.
type DueResponse struct {
	CustomerID int64           `json:"customerId"`
	DueAmount  decimal.Decimal `json:"dueAmount"`
}
