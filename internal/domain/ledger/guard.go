package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
)

// OverpaymentError rechazo local de un pago mayor al saldo pendiente.
type OverpaymentError struct {
	Amount     decimal.Decimal
	CurrentDue decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("el pago de %s excede el saldo pendiente de %s",
		e.Amount.StringFixed(2), e.CurrentDue.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error { return domain.ErrOverpayment }

// CheckPayment rechaza un pago que supere el saldo actual. Es solo una ayuda de UX: el backend
// es la autoridad y puede aplicar su propio recorte.
func CheckPayment(amount, currentDue decimal.Decimal) error {
	if amount.GreaterThan(currentDue) {
		return &OverpaymentError{Amount: amount, CurrentDue: currentDue}
	}
	return nil
}
