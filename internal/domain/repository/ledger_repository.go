package repository

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// LedgerRepository ledger de cilindros por cliente (solo lectura salvo UpdateEntry).
type LedgerRepository interface {
	// ListByCustomer devuelve todas las entradas del cliente, sin orden garantizado.
	ListByCustomer(ctx context.Context, customerID int64) ([]entity.LedgerEntry, error)
	GetDue(ctx context.Context, customerID int64) (*entity.CustomerDue, error)
	// UpdateEntry aplica la corrección; el backend recalcula la cadena posterior.
	UpdateEntry(ctx context.Context, entryID int64, upd entity.LedgerEntryUpdate) error
}
