package entity

// Warehouse bodega/godown desde donde salen y entran cilindros.
type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	IsActive bool   `json:"isActive"`
}

// WarehouseInput cuerpo de alta/edición de bodegas.
type WarehouseInput struct {
	Name     string `json:"name" validate:"required,max=80"`
	Location string `json:"location" validate:"max=200"`
	IsActive *bool  `json:"isActive,omitempty"`
}
