// Package entry registra las transacciones del día (venta, devolución de vacíos, gasto, depósito
// bancario y pago). Cada envío pasa por validación de etiquetas, la tabla de reglas del
// formulario y el control de envío único; la respuesta del servidor es la única fuente de verdad.
package entry

import (
	"context"
	"time"

	"github.com/jhoicas/gasagency-backoffice/internal/application/events"
	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// Service envío de formularios transaccionales.
type Service struct {
	gateway  repository.TransactionGateway
	modes    PaymentModeLister
	variants VariantEligibility
	dues     DueReader
	bus      *events.Bus
	guard    *SubmitGuard
	log      *logger.Logger
	now      func() time.Time
}

// Deps dependencias del servicio.
type Deps struct {
	Gateway  repository.TransactionGateway
	Modes    PaymentModeLister
	Variants VariantEligibility
	Dues     DueReader
	Bus      *events.Bus
	Guard    *SubmitGuard
	Log      *logger.Logger
	Now      func() time.Time
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	s := &Service{
		gateway: d.Gateway, modes: d.Modes, variants: d.Variants, dues: d.Dues,
		bus: d.Bus, guard: d.Guard, log: d.Log, now: d.Now,
	}
	if s.guard == nil {
		s.guard = NewSubmitGuard()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ── Validación (reevaluable en cada cambio del formulario) ────────────────────

// ValidateSale evalúa la venta sin enviarla.
func (s *Service) ValidateSale(ctx context.Context, sale entity.Sale) (*validation.Errors, error) {
	st, err := s.saleState(ctx, sale)
	if err != nil {
		return nil, err
	}
	errs := validation.Struct(sale)
	errs.Merge(SaleRules.Evaluate(st))
	return errs, nil
}

// ValidateEmptyReturn evalúa la devolución sin enviarla.
func (s *Service) ValidateEmptyReturn(ctx context.Context, r entity.EmptyReturn) (*validation.Errors, error) {
	st, err := s.emptyReturnState(ctx, r)
	if err != nil {
		return nil, err
	}
	errs := validation.Struct(r)
	errs.Merge(EmptyReturnRules.Evaluate(st))
	return errs, nil
}

// ValidateExpense evalúa el gasto sin enviarlo.
func (s *Service) ValidateExpense(ctx context.Context, e entity.Expense) (*validation.Errors, error) {
	mode, err := s.mode(ctx, e.PaymentModeID)
	if err != nil {
		return nil, err
	}
	errs := validation.Struct(e)
	errs.Merge(ExpenseRules.Evaluate(ExpenseState{Expense: e, Mode: mode, Today: s.today()}))
	return errs, nil
}

// ValidateBankDeposit evalúa el depósito sin enviarlo.
func (s *Service) ValidateBankDeposit(ctx context.Context, d entity.BankDeposit) (*validation.Errors, error) {
	mode, err := s.mode(ctx, d.PaymentModeID)
	if err != nil {
		return nil, err
	}
	errs := validation.Struct(d)
	errs.Merge(BankDepositRules.Evaluate(BankDepositState{Deposit: d, Mode: mode, Today: s.today()}))
	return errs, nil
}

// ValidatePayment evalúa el pago sin enviarlo (sin el tope por saldo).
func (s *Service) ValidatePayment(ctx context.Context, p entity.Payment) (*validation.Errors, error) {
	mode, err := s.mode(ctx, p.PaymentModeID)
	if err != nil {
		return nil, err
	}
	errs := validation.Struct(p)
	errs.Merge(PaymentRules.Evaluate(PaymentState{Payment: p, Mode: mode, Today: s.today()}))
	return errs, nil
}

// ── Envío ─────────────────────────────────────────────────────────────────────

// SubmitSale registra la venta. El total se recalcula desde las líneas.
func (s *Service) SubmitSale(ctx context.Context, sale entity.Sale) (*entity.Receipt, error) {
	sale.TotalAmount = SaleTotal(sale.Items)
	return submit(ctx, s, FormSale, events.SaleRecorded, sale.CustomerID,
		func(ctx context.Context) (*validation.Errors, error) { return s.ValidateSale(ctx, sale) },
		func(ctx context.Context) (*entity.Receipt, error) { return s.gateway.RecordSale(ctx, sale) })
}

// SubmitEmptyReturn registra la devolución de vacíos.
func (s *Service) SubmitEmptyReturn(ctx context.Context, r entity.EmptyReturn) (*entity.Receipt, error) {
	return submit(ctx, s, FormEmptyReturn, events.EmptyReturnRecorded, r.CustomerID,
		func(ctx context.Context) (*validation.Errors, error) { return s.ValidateEmptyReturn(ctx, r) },
		func(ctx context.Context) (*entity.Receipt, error) { return s.gateway.RecordEmptyReturn(ctx, r) })
}

// SubmitExpense registra el gasto.
func (s *Service) SubmitExpense(ctx context.Context, e entity.Expense) (*entity.Receipt, error) {
	return submit(ctx, s, FormExpense, events.ExpenseRecorded, 0,
		func(ctx context.Context) (*validation.Errors, error) { return s.ValidateExpense(ctx, e) },
		func(ctx context.Context) (*entity.Receipt, error) { return s.gateway.RecordExpense(ctx, e) })
}

// SubmitBankDeposit registra el depósito.
func (s *Service) SubmitBankDeposit(ctx context.Context, d entity.BankDeposit) (*entity.Receipt, error) {
	return submit(ctx, s, FormBankDeposit, events.BankDepositRecorded, 0,
		func(ctx context.Context) (*validation.Errors, error) { return s.ValidateBankDeposit(ctx, d) },
		func(ctx context.Context) (*entity.Receipt, error) { return s.gateway.RecordBankDeposit(ctx, d) })
}

// SubmitPayment registra el pago. Antes de ir a la red compara el monto con el saldo más
// reciente del ledger del cliente (dueAmount de la última entrada) y rechaza el sobrepago (ledger.OverpaymentError con el saldo en el mensaje).
func (s *Service) SubmitPayment(ctx context.Context, p entity.Payment) (*entity.Receipt, error) {
	return submit(ctx, s, FormPayment, events.PaymentRecorded, p.CustomerID,
		func(ctx context.Context) (*validation.Errors, error) { return s.ValidatePayment(ctx, p) },
		func(ctx context.Context) (*entity.Receipt, error) {
			due, err := s.dues.LatestDue(ctx, p.CustomerID)
			if err != nil {
				return nil, err
			}
			if err := ledger.CheckPayment(p.Amount, due); err != nil {
				return nil, err
			}
			return s.gateway.RecordPayment(ctx, p)
		})
}

func submit(
	ctx context.Context,
	s *Service,
	form string,
	kind events.Kind,
	customerID int64,
	validate func(context.Context) (*validation.Errors, error),
	send func(context.Context) (*entity.Receipt, error),
) (*entity.Receipt, error) {
	sessionID := ""
	if sess, ok := session.FromContext(ctx); ok {
		sessionID = sess.ID
	}
	release, err := s.guard.Acquire(sessionID, form)
	if err != nil {
		return nil, err
	}
	defer release()

	errs, err := validate(ctx)
	if err != nil {
		return nil, err
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	rc, err := send(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("form", form).Str("session_id", sessionID).Msg("entry: envío rechazado")
		return nil, err
	}
	s.log.Info().Str("form", form).Int64("id", rc.ID).Int64("customer_id", customerID).Msg("entry: transacción registrada")
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.Event{Kind: kind, EntityID: rc.ID, CustomerID: customerID})
	}
	return rc, nil
}

// ── Estado de los formularios ─────────────────────────────────────────────────

func (s *Service) today() time.Time {
	now := s.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) mode(ctx context.Context, id *int64) (*entity.PaymentMode, error) {
	if id == nil {
		return nil, nil
	}
	modes, err := s.modes.Active(ctx)
	if err != nil {
		return nil, err
	}
	for i := range modes {
		if modes[i].ID == *id {
			m := modes[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (s *Service) eligible(ctx context.Context, customerID int64) (map[int64]bool, error) {
	if customerID <= 0 || s.variants == nil {
		return nil, nil
	}
	vs, err := s.variants.EligibleVariants(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]bool, len(vs))
	for _, v := range vs {
		out[v.ID] = true
	}
	return out, nil
}

func (s *Service) saleState(ctx context.Context, sale entity.Sale) (SaleState, error) {
	mode, err := s.mode(ctx, sale.PaymentModeID)
	if err != nil {
		return SaleState{}, err
	}
	el, err := s.eligible(ctx, sale.CustomerID)
	if err != nil {
		return SaleState{}, err
	}
	return SaleState{Sale: sale, Mode: mode, Eligible: el, Today: s.today()}, nil
}

func (s *Service) emptyReturnState(ctx context.Context, r entity.EmptyReturn) (EmptyReturnState, error) {
	mode, err := s.mode(ctx, r.PaymentModeID)
	if err != nil {
		return EmptyReturnState{}, err
	}
	el, err := s.eligible(ctx, r.CustomerID)
	if err != nil {
		return EmptyReturnState{}, err
	}
	return EmptyReturnState{Return: r, Mode: mode, Eligible: el, Today: s.today()}, nil
}
