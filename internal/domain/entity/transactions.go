package entity

import "github.com/shopspring/decimal"

// SaleItem línea de venta por variante.
type SaleItem struct {
	VariantID     int64           `json:"variantId" validate:"required,gt=0"`
	FilledIssued  int             `json:"filledIssued" validate:"gte=0"`
	EmptyReceived int             `json:"emptyReceived" validate:"gte=0"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Discount      decimal.Decimal `json:"discount"`
}

// FinalPrice precio unitario tras el descuento.
func (i SaleItem) FinalPrice() decimal.Decimal {
	return i.BasePrice.Sub(i.Discount)
}

// Amount importe de la línea: cilindros llenos entregados × precio final.
func (i SaleItem) Amount() decimal.Decimal {
	return i.FinalPrice().Mul(decimal.NewFromInt(int64(i.FilledIssued)))
}

// Sale venta de cilindros llenos (con recepción opcional de vacíos y cobro).
type Sale struct {
	CustomerID      int64           `json:"customerId" validate:"required,gt=0"`
	WarehouseID     int64           `json:"warehouseId" validate:"required,gt=0"`
	Items           []SaleItem      `json:"items" validate:"required,min=1,dive"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	PaymentModeID   *int64          `json:"paymentModeId,omitempty"`
	BankAccountID   *int64          `json:"bankAccountId,omitempty"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" validate:"max=50"`
	SaleDate        Date            `json:"saleDate"`
	Notes           string          `json:"notes,omitempty" validate:"max=500"`
}

// EmptyReturn devolución de cilindros vacíos.
type EmptyReturn struct {
	CustomerID     int64           `json:"customerId" validate:"required,gt=0"`
	WarehouseID    int64           `json:"warehouseId" validate:"required,gt=0"`
	VariantID      int64           `json:"variantId" validate:"required,gt=0"`
	EmptyIn        int             `json:"emptyIn"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	PaymentModeID  *int64          `json:"paymentModeId,omitempty"`
	BankAccountID  *int64          `json:"bankAccountId,omitempty"`
	ReturnDate     Date            `json:"returnDate"`
	Notes          string          `json:"notes,omitempty" validate:"max=500"`
}

// Expense gasto operativo de la agencia.
type Expense struct {
	Category        string          `json:"category" validate:"required,max=60"`
	Description     string          `json:"description" validate:"required,max=250"`
	Amount          decimal.Decimal `json:"amount"`
	ExpenseDate     Date            `json:"expenseDate"`
	PaymentModeID   *int64          `json:"paymentModeId,omitempty"`
	BankAccountID   *int64          `json:"bankAccountId,omitempty"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" validate:"max=50"`
}

// BankDeposit depósito de efectivo/cheques en una cuenta bancaria.
type BankDeposit struct {
	BankAccountID   int64           `json:"bankAccountId" validate:"required,gt=0"`
	Amount          decimal.Decimal `json:"amount"`
	DepositDate     Date            `json:"depositDate"`
	PaymentModeID   *int64          `json:"paymentModeId,omitempty"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" validate:"max=50"`
	Notes           string          `json:"notes,omitempty" validate:"max=500"`
}

// Payment cobro a un cliente contra su saldo pendiente.
type Payment struct {
	CustomerID      int64           `json:"customerId" validate:"required,gt=0"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     Date            `json:"paymentDate"`
	PaymentModeID   *int64          `json:"paymentModeId,omitempty"`
	BankAccountID   *int64          `json:"bankAccountId,omitempty"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" validate:"max=50"`
	Notes           string          `json:"notes,omitempty" validate:"max=500"`
}

// Receipt confirmación del backend tras registrar una transacción.
type Receipt struct {
	ID            int64           `json:"id"`
	ReferenceNo   string          `json:"referenceNo,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
	TransactionAt Date            `json:"transactionDate"`
}
