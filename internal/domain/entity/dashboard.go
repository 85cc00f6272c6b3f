package entity

import "github.com/shopspring/decimal"

// DashboardSummary resumen precalculado por el backend para el periodo solicitado.
type DashboardSummary struct {
	From             Date             `json:"from"`
	To               Date             `json:"to"`
	TotalSales       decimal.Decimal  `json:"totalSales"`
	TotalCollections decimal.Decimal  `json:"totalCollections"`
	TotalExpenses    decimal.Decimal  `json:"totalExpenses"`
	TotalDeposits    decimal.Decimal  `json:"totalDeposits"`
	TotalDue         decimal.Decimal  `json:"totalDue"`
	FilledIssued     int              `json:"filledIssued"`
	EmptyReceived    int              `json:"emptyReceived"`
	SalesByDay       []DailySales     `json:"salesByDay"`
	SalesByVariant   []VariantSales   `json:"salesByVariant"`
	TopDebtors       []CustomerDebt   `json:"topDebtors"`
	Inventory        []InventoryLevel `json:"inventory"`
}

// DailySales ventas y cobros de un día.
type DailySales struct {
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Collections decimal.Decimal `json:"collections"`
}

// VariantSales ventas por variante.
type VariantSales struct {
	VariantName string          `json:"variantName"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// CustomerDebt cliente con saldo pendiente.
type CustomerDebt struct {
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	DueAmount    decimal.Decimal `json:"dueAmount"`
}

// InventoryLevel existencias de una variante en una bodega.
type InventoryLevel struct {
	WarehouseName string `json:"warehouseName"`
	VariantName   string `json:"variantName"`
	Filled        int    `json:"filled"`
	Empty         int    `json:"empty"`
}
