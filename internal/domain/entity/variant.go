package entity

import "github.com/shopspring/decimal"

// Variant SKU de cilindro (tamaño/peso).
type Variant struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	TypeCode  string          `json:"typeCode"`
	WeightKg  decimal.Decimal `json:"weightKg"`
	BasePrice decimal.Decimal `json:"basePrice"`
	IsActive  bool            `json:"isActive"`
}

// VariantInput cuerpo de alta/edición de variantes.
type VariantInput struct {
	Name      string          `json:"name" validate:"required,max=60"`
	TypeCode  string          `json:"typeCode" validate:"required,max=20"`
	WeightKg  decimal.Decimal `json:"weightKg"`
	BasePrice decimal.Decimal `json:"basePrice"`
	IsActive  *bool           `json:"isActive,omitempty"`
}

// VariantPricing precio de una variante, opcionalmente específico de un cliente.
type VariantPricing struct {
	ID            int64           `json:"id,omitempty"`
	VariantID     int64           `json:"variantId"`
	CustomerID    *int64          `json:"customerId,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Discount      decimal.Decimal `json:"discount"`
	EffectiveFrom Date            `json:"effectiveFrom"`
}
