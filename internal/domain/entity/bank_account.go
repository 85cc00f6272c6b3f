package entity

import "github.com/shopspring/decimal"

// BankAccount cuenta bancaria de la agencia.
type BankAccount struct {
	ID             int64           `json:"id"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	AccountName    string          `json:"accountName"`
	IFSC           string          `json:"ifsc"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

// BankAccountInput cuerpo de alta/edición de cuentas bancarias.
type BankAccountInput struct {
	BankName      string `json:"bankName" validate:"required,max=80"`
	AccountNumber string `json:"accountNumber" validate:"required,min=6,max=20"`
	AccountName   string `json:"accountName" validate:"required,max=120"`
	IFSC          string `json:"ifsc" validate:"required,len=11"`
	IsActive      *bool  `json:"isActive,omitempty"`
}
