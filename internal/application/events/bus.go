// Package events bus de eventos tipado en proceso. Reemplaza el pub/sub de refresco con claves
// arbitrarias: solo se aceptan los Kind declarados aquí.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// Kind tipo de evento.
type Kind string

const (
	CustomerChanged     Kind = "customer.changed"
	VariantChanged      Kind = "variant.changed"
	WarehouseChanged    Kind = "warehouse.changed"
	PaymentModeChanged  Kind = "payment-mode.changed"
	BankAccountChanged  Kind = "bank-account.changed"
	SaleRecorded        Kind = "sale.recorded"
	EmptyReturnRecorded Kind = "empty-return.recorded"
	ExpenseRecorded     Kind = "expense.recorded"
	BankDepositRecorded Kind = "bank-deposit.recorded"
	PaymentRecorded     Kind = "payment.recorded"
	LedgerEntryUpdated  Kind = "ledger-entry.updated"
)

var known = map[Kind]struct{}{
	CustomerChanged: {}, VariantChanged: {}, WarehouseChanged: {}, PaymentModeChanged: {},
	BankAccountChanged: {}, SaleRecorded: {}, EmptyReturnRecorded: {}, ExpenseRecorded: {},
	BankDepositRecorded: {}, PaymentRecorded: {}, LedgerEntryUpdated: {},
}

// Valid indica si el tipo pertenece al conjunto cerrado.
func (k Kind) Valid() bool {
	_, ok := known[k]
	return ok
}

// IsTransaction eventos que alteran saldos, inventario o el dashboard.
func (k Kind) IsTransaction() bool {
	switch k {
	case SaleRecorded, EmptyReturnRecorded, ExpenseRecorded, BankDepositRecorded, PaymentRecorded, LedgerEntryUpdated:
		return true
	}
	return false
}

// Event evento publicado. CustomerID vale 0 cuando no aplica.
type Event struct {
	Kind       Kind
	EntityID   int64
	CustomerID int64
}

// Handler reacciona a un evento. Los errores se registran y no detienen a los demás handlers.
type Handler func(ctx context.Context, ev Event) error

// Bus despacho síncrono en orden de suscripción.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
	log      *logger.Logger
}

// NewBus construye el bus.
func NewBus(log *logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{handlers: make(map[Kind][]Handler), log: log}
}

// Subscribe registra h para los tipos indicados.
func (b *Bus) Subscribe(h Handler, kinds ...Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range kinds {
		if !k.Valid() {
			return fmt.Errorf("%w: tipo de evento desconocido %q", domain.ErrInvalidInput, k)
		}
	}
	for _, k := range kinds {
		b.handlers[k] = append(b.handlers[k], h)
	}
	return nil
}

// Publish entrega ev a sus suscriptores.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Kind.Valid() {
		return fmt.Errorf("%w: tipo de evento desconocido %q", domain.ErrInvalidInput, ev.Kind)
	}
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[ev.Kind]...)
	b.mu.RUnlock()

	for _, h := range hs {
		if err := h(ctx, ev); err != nil {
			b.log.Warn().Err(err).Str("kind", string(ev.Kind)).Int64("entity_id", ev.EntityID).Msg("events: handler falló")
		}
	}
	return nil
}

// AllTransactions tipos que afectan al dashboard.
func AllTransactions() []Kind {
	return []Kind{SaleRecorded, EmptyReturnRecorded, ExpenseRecorded, BankDepositRecorded, PaymentRecorded, LedgerEntryUpdated}
}
