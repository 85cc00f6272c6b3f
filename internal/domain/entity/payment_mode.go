package entity

// PaymentMode modo de pago (efectivo, UPI, cheque, transferencia...).
type PaymentMode struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Code                string `json:"code"`
	Description         string `json:"description,omitempty"`
	IsActive            bool   `json:"isActive"`
	RequiresBankAccount bool   `json:"requiresBankAccount"`
	RequiresReference   bool   `json:"requiresReference"`
}

// PaymentModeInput cuerpo de alta/edición de modos de pago.
type PaymentModeInput struct {
	Name                string `json:"name" validate:"required,max=60"`
	Code                string `json:"code" validate:"required,max=20"`
	Description         string `json:"description,omitempty" validate:"max=200"`
	IsActive            *bool  `json:"isActive,omitempty"`
	RequiresBankAccount bool   `json:"requiresBankAccount"`
	RequiresReference   bool   `json:"requiresReference"`
}
