// Package ledger casos de uso del ledger de cilindros: vista del cliente, saldo y corrección
// de entradas recientes.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gasagency-backoffice/internal/application/events"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// Row fila del ledger tal como se muestra: entrada del servidor + columnas derivadas.
type Row struct {
	entity.LedgerEntry
	RowDue   decimal.Decimal `json:"rowDue"`
	Editable bool            `json:"editable"`
}

// View ledger completo de un cliente.
type View struct {
	CustomerID int64                 `json:"customerId"`
	Rows       []Row                 `json:"rows"` // fecha desc, id desc
	Balances   ledger.BalanceSummary `json:"balances"`
	Totals     ledger.Totals         `json:"totals"`
	// CurrentDue saldo autoritativo (endpoint /due); es el que usa el control de pagos.
	CurrentDue decimal.Decimal `json:"currentDue"`
}

// UpdateRequest corrección de una entrada.
type UpdateRequest struct {
	ledger.EditableFields
	ChangeReason string `json:"changeReason"`
}

// UseCase lectura y corrección del ledger.
type UseCase struct {
	repo   repository.LedgerRepository
	bus    *events.Bus
	window int
	log    *logger.Logger
}

// NewUseCase construye el caso de uso. window es el número de entradas recientes editables.
func NewUseCase(repo repository.LedgerRepository, bus *events.Bus, window int, log *logger.Logger) *UseCase {
	if window <= 0 {
		window = ledger.DefaultEditableWindow
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, bus: bus, window: window, log: log}
}

// GetLedger entradas y saldo del cliente en paralelo, con las proyecciones de pantalla.
func (uc *UseCase) GetLedger(ctx context.Context, customerID int64) (*View, error) {
	var (
		entries []entity.LedgerEntry
		due     *entity.CustomerDue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = uc.repo.ListByCustomer(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		due, err = uc.repo.GetDue(gctx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return uc.buildView(customerID, entries, due.DueAmount), nil
}

// GetDue saldo pendiente autoritativo.
func (uc *UseCase) GetDue(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	due, err := uc.repo.GetDue(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return due.DueAmount, nil
}

// LatestDue dueAmount de la entrada más reciente del ledger, por (fecha, id). Es la referencia
// del tope de pagos; puede diferir del saldo de GetDue.
func (uc *UseCase) LatestDue(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	entries, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.LatestDue(entries), nil
}

// Entries entradas del cliente sin proyectar (exportaciones).
func (uc *UseCase) Entries(ctx context.Context, customerID int64) ([]entity.LedgerEntry, error) {
	return uc.repo.ListByCustomer(ctx, customerID)
}

// UpdateEntry corrige una de las entradas recientes. Solo viajan los campos modificados, con el
// motivo y el resumen de cambios; después se vuelve a leer el ledger porque el backend recalcula
// balance y saldo de las entradas posteriores.
func (uc *UseCase) UpdateEntry(ctx context.Context, customerID, entryID int64, req UpdateRequest) (*View, error) {
	entries, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	asc := ledger.SortForRunningBalance(entries)
	idx := -1
	for i, e := range asc {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("entrada %d del cliente %d: %w", entryID, customerID, domain.ErrNotFound)
	}
	if !ledger.IsEditable(idx, len(asc), uc.window) {
		return nil, fmt.Errorf("entrada %d: %w", entryID, domain.ErrNotEditable)
	}

	upd, summary := ledger.Diff(asc[idx], req.EditableFields)
	errs := updateRules.Evaluate(updateState{req: req, upd: upd})
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	upd.ChangeReason = strings.TrimSpace(req.ChangeReason)
	upd.ChangeSummary = summary

	if err := uc.repo.UpdateEntry(ctx, entryID, upd); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("entry_id", entryID).Int64("customer_id", customerID).Str("summary", summary).Msg("ledger: entrada corregida")
	if uc.bus != nil {
		_ = uc.bus.Publish(ctx, events.Event{Kind: events.LedgerEntryUpdated, EntityID: entryID, CustomerID: customerID})
	}
	return uc.GetLedger(ctx, customerID)
}

type updateState struct {
	req UpdateRequest
	upd entity.LedgerEntryUpdate
}

var updateRules = validation.Table[updateState]{
	{Field: "_", Check: func(s updateState) string {
		if s.upd.IsEmpty() {
			return "no hay cambios para guardar"
		}
		return ""
	}},
	{Field: "changeReason", Check: func(s updateState) string {
		if strings.TrimSpace(s.req.ChangeReason) == "" {
			return "es obligatorio"
		}
		return ""
	}},
	{Field: "filledOut", When: func(s updateState) bool { return s.upd.FilledOut != nil }, Check: func(s updateState) string {
		if *s.upd.FilledOut < 0 {
			return "no puede ser negativo"
		}
		return ""
	}},
	{Field: "emptyIn", When: func(s updateState) bool { return s.upd.EmptyIn != nil }, Check: func(s updateState) string {
		if *s.upd.EmptyIn < 0 {
			return "no puede ser negativo"
		}
		return ""
	}},
	{Field: "totalAmount", When: func(s updateState) bool { return s.upd.TotalAmount != nil }, Check: func(s updateState) string {
		if s.upd.TotalAmount.IsNegative() {
			return "no puede ser negativo"
		}
		return ""
	}},
	{Field: "amountReceived", When: func(s updateState) bool { return s.upd.AmountReceived != nil }, Check: func(s updateState) string {
		if s.upd.AmountReceived.IsNegative() {
			return "no puede ser negativo"
		}
		return ""
	}},
}

func (uc *UseCase) buildView(customerID int64, entries []entity.LedgerEntry, currentDue decimal.Decimal) *View {
	asc := ledger.SortForRunningBalance(entries)
	editable := make(map[int64]bool, len(asc))
	for i, e := range asc {
		editable[e.ID] = ledger.IsEditable(i, len(asc), uc.window)
	}
	display := ledger.SortForDisplay(entries)
	rows := make([]Row, 0, len(display))
	for _, e := range display {
		rows = append(rows, Row{LedgerEntry: e, RowDue: ledger.RowDueAmount(e), Editable: editable[e.ID]})
	}
	return &View{
		CustomerID: customerID,
		Rows:       rows,
		Balances:   ledger.MostRecentBalancePerVariant(entries),
		Totals:     ledger.ComputeTotals(entries),
		CurrentDue: currentDue,
	}
}
