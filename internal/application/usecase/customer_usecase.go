package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gasagency-backoffice/internal/application/events"
	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
	"github.com/jhoicas/gasagency-backoffice/pkg/debounce"
)

// CustomerUseCase clientes: CRUD, búsqueda mientras se escribe y variantes elegibles.
type CustomerUseCase struct {
	*CatalogUseCase[entity.Customer, entity.CustomerInput]
	variants *VariantUseCase
	search   *debounce.Group[[]entity.Customer]
}

// NewCustomerUseCase construye el caso de uso. search agrupa las búsquedas por sesión.
func NewCustomerUseCase(
	catalog *CatalogUseCase[entity.Customer, entity.CustomerInput],
	variants *VariantUseCase,
	search *debounce.Group[[]entity.Customer],
) *CustomerUseCase {
	return &CustomerUseCase{CatalogUseCase: catalog, variants: variants, search: search}
}

// Search filtra los clientes activos por nombre o teléfono. Las ráfagas de la misma sesión se
// colapsan en una sola evaluación; un término más reciente reemplaza al pendiente
// (debounce.ErrSuperseded para el anterior).
func (uc *CustomerUseCase) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	term = strings.TrimSpace(term)
	key := "customers"
	if s, ok := session.FromContext(ctx); ok {
		key = s.ID + ":customers"
	}
	return uc.search.Do(ctx, key, term, func(ctx context.Context, term string) ([]entity.Customer, error) {
		active, err := uc.Active(ctx)
		if err != nil {
			return nil, err
		}
		return FilterCustomers(active, term), nil
	})
}

// OnCustomerChanged descarta los resultados de búsqueda ya calculados; la siguiente búsqueda
// filtra sobre la lista activa recién invalidada.
func (uc *CustomerUseCase) OnCustomerChanged(context.Context, events.Event) error {
	uc.search.ForgetResults()
	return nil
}

// FilterCustomers coincidencia parcial, sin distinguir mayúsculas, sobre nombre y teléfono.
func FilterCustomers(customers []entity.Customer, term string) []entity.Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]entity.Customer, 0, len(customers))
	for _, c := range customers {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Phone, term) {
			out = append(out, c)
		}
	}
	return out
}

// EligibleVariants variantes activas que se pueden ofrecer al cliente en venta o devolución.
func (uc *CustomerUseCase) EligibleVariants(ctx context.Context, customerID int64) ([]entity.Variant, error) {
	c, err := uc.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	active, err := uc.variants.Active(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.EligibleVariants(c.ConfiguredVariants, active), nil
}
