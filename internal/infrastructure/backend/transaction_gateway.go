package backend

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
)

var _ repository.TransactionGateway = (*TransactionGateway)(nil)

// TransactionGateway registra transacciones; el backend es quien recalcula ledger y saldos.
type TransactionGateway struct {
	c *Client
}

// NewTransactionGateway construye el adaptador.
func NewTransactionGateway(c *Client) *TransactionGateway {
	return &TransactionGateway{c: c}
}

func (g *TransactionGateway) RecordSale(ctx context.Context, s entity.Sale) (*entity.Receipt, error) {
	return g.post(ctx, "/sales", s)
}

func (g *TransactionGateway) RecordEmptyReturn(ctx context.Context, r entity.EmptyReturn) (*entity.Receipt, error) {
	return g.post(ctx, "/empty-returns", r)
}

func (g *TransactionGateway) RecordExpense(ctx context.Context, e entity.Expense) (*entity.Receipt, error) {
	return g.post(ctx, "/expenses", e)
}

func (g *TransactionGateway) RecordBankDeposit(ctx context.Context, d entity.BankDeposit) (*entity.Receipt, error) {
	return g.post(ctx, "/bank-deposits", d)
}

func (g *TransactionGateway) RecordPayment(ctx context.Context, p entity.Payment) (*entity.Receipt, error) {
	return g.post(ctx, "/payments", p)
}

func (g *TransactionGateway) post(ctx context.Context, path string, body any) (*entity.Receipt, error) {
	var rc entity.Receipt
	if err := g.c.Post(ctx, path, body, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}
