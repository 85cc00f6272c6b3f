package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const resourceLedger = "/customer-cylinder-ledger"

// LedgerRepo ledger de cilindros por cliente.
type LedgerRepo struct {
	c *Client
}

// NewLedgerRepository construye el adaptador.
func NewLedgerRepository(c *Client) *LedgerRepo {
	return &LedgerRepo{c: c}
}

// ListByCustomer GET /customer-cylinder-ledger/customer/{id}.
func (r *LedgerRepo) ListByCustomer(ctx context.Context, customerID int64) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	path := resourceLedger + "/customer/" + strconv.FormatInt(customerID, 10)
	if err := r.c.Get(ctx, path, nil, &entries); err != nil {
		return nil, fmt.Errorf("ledger cliente %d: %w", customerID, err)
	}
	if entries == nil {
		entries = []entity.LedgerEntry{}
	}
	return entries, nil
}

// GetDue GET /customer-cylinder-ledger/customer/{id}/due.
func (r *LedgerRepo) GetDue(ctx context.Context, customerID int64) (*entity.CustomerDue, error) {
	var due entity.CustomerDue
	path := resourceLedger + "/customer/" + strconv.FormatInt(customerID, 10) + "/due"
	if err := r.c.Get(ctx, path, nil, &due); err != nil {
		return nil, fmt.Errorf("saldo cliente %d: %w", customerID, err)
	}
	due.CustomerID = customerID
	return &due, nil
}

// UpdateEntry PUT /customer-cylinder-ledger/{entryId}.
func (r *LedgerRepo) UpdateEntry(ctx context.Context, entryID int64, upd entity.LedgerEntryUpdate) error {
	path := resourceLedger + "/" + strconv.FormatInt(entryID, 10)
	if err := r.c.Put(ctx, path, upd, nil); err != nil {
		return fmt.Errorf("actualizar entrada %d: %w", entryID, err)
	}
	return nil
}
