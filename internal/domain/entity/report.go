package entity

import "github.com/shopspring/decimal"

// ReportKind reportes tabulares expuestos por el backend.
type ReportKind string

const (
	ReportSales        ReportKind = "sales"
	ReportEmptyReturns ReportKind = "empty-returns"
	ReportExpenses     ReportKind = "expenses"
	ReportBankDeposits ReportKind = "bank-deposits"
	ReportPayments     ReportKind = "payments"
	ReportStock        ReportKind = "stock"
)

// Valid indica si el tipo de reporte está soportado.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportSales, ReportEmptyReturns, ReportExpenses, ReportBankDeposits, ReportPayments, ReportStock:
		return true
	}
	return false
}

// ReportQuery filtros comunes de los reportes.
type ReportQuery struct {
	From       Date
	To         Date
	CustomerID *int64
	PageQuery
}

// ReportRow fila genérica: el backend define las columnas de cada reporte.
type ReportRow map[string]any

// PeriodSummary resumen agregado del periodo para el PDF de cierre.
type PeriodSummary struct {
	From             Date                  `json:"from"`
	To               Date                  `json:"to"`
	TotalSales       decimal.Decimal       `json:"totalSales"`
	TotalCollections decimal.Decimal       `json:"totalCollections"`
	TotalExpenses    decimal.Decimal       `json:"totalExpenses"`
	TotalDeposits    decimal.Decimal       `json:"totalDeposits"`
	ClosingDue       decimal.Decimal       `json:"closingDue"`
	Variants         []VariantPeriodTotals `json:"variants"`
	ExpenseByKind    []CategoryAmount      `json:"expenseByCategory"`
}

// VariantPeriodTotals movimiento de cilindros por variante en el periodo.
type VariantPeriodTotals struct {
	VariantName   string          `json:"variantName"`
	FilledIssued  int             `json:"filledIssued"`
	EmptyReceived int             `json:"emptyReceived"`
	Amount        decimal.Decimal `json:"amount"`
}

// CategoryAmount importe por categoría.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
