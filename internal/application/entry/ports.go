package entry

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// PaymentModeLister modos de pago activos (caché de referencia).
type PaymentModeLister interface {
	Active(ctx context.Context) ([]entity.PaymentMode, error)
}

// VariantEligibility variantes que se pueden ofrecer a un cliente.
type VariantEligibility interface {
	EligibleVariants(ctx context.Context, customerID int64) ([]entity.Variant, error)
}

// DueReader saldo de la entrada más reciente del ledger de un cliente.
type DueReader interface {
	LatestDue(ctx context.Context, customerID int64) (decimal.Decimal, error)
}
