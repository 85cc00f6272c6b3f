package repository

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// TransactionGateway registro de transacciones en el backend.
type TransactionGateway interface {
	RecordSale(ctx context.Context, s entity.Sale) (*entity.Receipt, error)
	RecordEmptyReturn(ctx context.Context, r entity.EmptyReturn) (*entity.Receipt, error)
	RecordExpense(ctx context.Context, e entity.Expense) (*entity.Receipt, error)
	RecordBankDeposit(ctx context.Context, d entity.BankDeposit) (*entity.Receipt, error)
	RecordPayment(ctx context.Context, p entity.Payment) (*entity.Receipt, error)
}
