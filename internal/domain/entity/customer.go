package entity

import (
	"encoding/json"
	"time"
)

// Customer cliente de la agencia (distribuidor, comercio u hogar).
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	GSTNumber string    `json:"gstNumber,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	// ConfiguredVariants llega del backend como arreglo nativo ([1,2]) o como
	// string JSON ("[1,2]"); se conserva crudo y se interpreta con ledger.EligibleVariants.
	ConfiguredVariants json.RawMessage `json:"configuredVariants,omitempty"`
}

// CustomerInput cuerpo de alta/edición de clientes.
type CustomerInput struct {
	Name               string  `json:"name" validate:"required,max=120"`
	Phone              string  `json:"phone" validate:"required,min=7,max=15"`
	Address            string  `json:"address" validate:"max=250"`
	GSTNumber          string  `json:"gstNumber,omitempty" validate:"omitempty,len=15"`
	IsActive           *bool   `json:"isActive,omitempty"`
	ConfiguredVariants []int64 `json:"configuredVariants"`
}
