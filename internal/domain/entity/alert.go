package entity

import (
	"strconv"
	"time"
)

// Alert evento de alerta (stock bajo, saldo vencido, etc.).
type Alert struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	CustomerID  *int64    `json:"customerId,omitempty"`
	VariantID   *int64    `json:"variantId,omitempty"`
	WarehouseID *int64    `json:"warehouseId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Key identidad de la alerta para deduplicar: tipo+id, o tipo+entidades si no hay id.
func (a Alert) Key() string {
	if a.ID != "" {
		return a.Type + "#" + a.ID
	}
	return a.Type + "|" + optID(a.CustomerID) + "|" + optID(a.VariantID) + "|" + optID(a.WarehouseID)
}

func optID(p *int64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatInt(*p, 10)
}
