// Package analytics arma el dashboard (tarjetas KPI y datasets de gráficos) a partir del
// resumen que el backend ya calcula. No agrega nada por su cuenta: solo reorganiza para pantalla.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/application/cache"
	"github.com/jhoicas/gasagency-backoffice/internal/application/events"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

const (
	topDebtors  = 10 // barras del gráfico de deudores
	maxPeriod   = 366 * 24 * time.Hour
	cachePrefix = "dashboard:"
)

// ── Modelo de pantalla ────────────────────────────────────────────────────────

// ChartType tipo de gráfico que dibuja el navegador.
type ChartType string

const (
	ChartLine       ChartType = "line"
	ChartPie        ChartType = "pie"
	ChartBar        ChartType = "bar"
	ChartStackedBar ChartType = "stacked-bar"
)

// KPI tarjeta del dashboard.
type KPI struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"` // "money" o "units"
}

// Dataset serie de un gráfico. Stack agrupa series apiladas.
type Dataset struct {
	Label string            `json:"label"`
	Data  []decimal.Decimal `json:"data"`
	Stack string            `json:"stack,omitempty"`
}

// Chart gráfico listo para dibujar.
type Chart struct {
	Type     ChartType `json:"type"`
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dashboard respuesta completa.
type Dashboard struct {
	From           entity.Date `json:"from"`
	To             entity.Date `json:"to"`
	KPIs           []KPI       `json:"kpis"`
	SalesByDay     Chart       `json:"salesByDay"`
	SalesByVariant Chart       `json:"salesByVariant"`
	TopDebtors     Chart       `json:"topDebtors"`
	Inventory      Chart       `json:"inventory"`
}

// ── Caso de uso ───────────────────────────────────────────────────────────────

// UseCase dashboard con el resumen cacheado por periodo.
type UseCase struct {
	repo  repository.DashboardRepository
	store cache.Store
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*cache.Entry[entity.DashboardSummary]
}

// NewUseCase construye el caso de uso. ttl es la vida del resumen en caché.
func NewUseCase(repo repository.DashboardRepository, store cache.Store, ttl time.Duration, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:    repo,
		store:   store,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*cache.Entry[entity.DashboardSummary]),
	}
}

// DefaultPeriod del día 1 del mes en curso hasta hoy.
func (uc *UseCase) DefaultPeriod() (entity.Date, entity.Date) {
	now := uc.now()
	return entity.NewDate(now.Year(), now.Month(), 1), entity.NewDate(now.Year(), now.Month(), now.Day())
}

// Get devuelve el dashboard del periodo; fechas cero toman el periodo por defecto.
func (uc *UseCase) Get(ctx context.Context, from, to entity.Date) (*Dashboard, error) {
	if from.IsZero() || to.IsZero() {
		df, dt := uc.DefaultPeriod()
		if from.IsZero() {
			from = df
		}
		if to.IsZero() {
			to = dt
		}
	}
	if to.Before(from.Time) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	if to.Sub(from.Time) > maxPeriod {
		return nil, fmt.Errorf("%w: el periodo no puede superar un año", domain.ErrInvalidInput)
	}

	sum, err := uc.entry(from, to).Get(ctx, func(ctx context.Context) (entity.DashboardSummary, error) {
		s, err := uc.repo.Summary(ctx, from, to)
		if err != nil {
			return entity.DashboardSummary{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	return Build(sum, from, to), nil
}

// Invalidate descarta todos los resúmenes cacheados.
func (uc *UseCase) Invalidate(ctx context.Context) error {
	uc.mu.Lock()
	entries := make([]*cache.Entry[entity.DashboardSummary], 0, len(uc.entries))
	for _, e := range uc.entries {
		entries = append(entries, e)
	}
	uc.mu.Unlock()

	for _, e := range entries {
		if err := e.Invalidate(ctx); err != nil {
			return fmt.Errorf("dashboard: invalidar: %w", err)
		}
	}
	return nil
}

// OnTransaction handler del bus: cualquier transacción deja obsoleto el resumen.
func (uc *UseCase) OnTransaction(ctx context.Context, ev events.Event) error {
	uc.log.Debug().Str("event", string(ev.Kind)).Msg("dashboard: invalidando resumen")
	return uc.Invalidate(ctx)
}

func (uc *UseCase) entry(from, to entity.Date) *cache.Entry[entity.DashboardSummary] {
	key := cachePrefix + from.String() + ":" + to.String()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	e, ok := uc.entries[key]
	if !ok {
		e = cache.NewEntry[entity.DashboardSummary](uc.store, key, uc.ttl)
		uc.entries[key] = e
	}
	return e
}

// ── Construcción de gráficos ──────────────────────────────────────────────────

// Build convierte el resumen del backend en tarjetas y datasets.
func Build(s entity.DashboardSummary, from, to entity.Date) *Dashboard {
	return &Dashboard{
		From:           from,
		To:             to,
		KPIs:           kpis(s),
		SalesByDay:     salesByDay(s.SalesByDay),
		SalesByVariant: salesByVariant(s.SalesByVariant),
		TopDebtors:     debtors(s.TopDebtors),
		Inventory:      inventory(s.Inventory),
	}
}

func kpis(s entity.DashboardSummary) []KPI {
	return []KPI{
		{Key: "sales", Label: "Ventas", Value: s.TotalSales, Unit: "money"},
		{Key: "collections", Label: "Cobros", Value: s.TotalCollections, Unit: "money"},
		{Key: "expenses", Label: "Gastos", Value: s.TotalExpenses, Unit: "money"},
		{Key: "deposits", Label: "Depósitos", Value: s.TotalDeposits, Unit: "money"},
		{Key: "due", Label: "Saldo pendiente", Value: s.TotalDue, Unit: "money"},
		{Key: "filled", Label: "Llenos entregados", Value: decimal.NewFromInt(int64(s.FilledIssued)), Unit: "units"},
		{Key: "empty", Label: "Vacíos recibidos", Value: decimal.NewFromInt(int64(s.EmptyReceived)), Unit: "units"},
	}
}

// salesByDay línea ordenada por fecha con ventas y cobros.
func salesByDay(days []entity.DailySales) Chart {
	sorted := append([]entity.DailySales(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date.Time) })

	c := Chart{Type: ChartLine, Title: "Ventas por día", Labels: make([]string, 0, len(sorted))}
	sales := Dataset{Label: "Ventas", Data: make([]decimal.Decimal, 0, len(sorted))}
	coll := Dataset{Label: "Cobros", Data: make([]decimal.Decimal, 0, len(sorted))}
	for _, d := range sorted {
		c.Labels = append(c.Labels, d.Date.String())
		sales.Data = append(sales.Data, d.Amount)
		coll.Data = append(coll.Data, d.Collections)
	}
	c.Datasets = []Dataset{sales, coll}
	return c
}

// salesByVariant torta por importe, de mayor a menor.
func salesByVariant(vs []entity.VariantSales) Chart {
	sorted := append([]entity.VariantSales(nil), vs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount.GreaterThan(sorted[j].Amount) })

	c := Chart{Type: ChartPie, Title: "Ventas por variante", Labels: make([]string, 0, len(sorted))}
	ds := Dataset{Label: "Importe", Data: make([]decimal.Decimal, 0, len(sorted))}
	for _, v := range sorted {
		c.Labels = append(c.Labels, v.VariantName)
		ds.Data = append(ds.Data, v.Amount)
	}
	c.Datasets = []Dataset{ds}
	return c
}

// debtors barras con los mayores saldos; los saldos cero o negativos no aparecen.
func debtors(ds []entity.CustomerDebt) Chart {
	filtered := make([]entity.CustomerDebt, 0, len(ds))
	for _, d := range ds {
		if d.DueAmount.IsPositive() {
			filtered = append(filtered, d)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].DueAmount.GreaterThan(filtered[j].DueAmount) })
	if len(filtered) > topDebtors {
		filtered = filtered[:topDebtors]
	}

	c := Chart{Type: ChartBar, Title: "Mayores deudores", Labels: make([]string, 0, len(filtered))}
	set := Dataset{Label: "Saldo", Data: make([]decimal.Decimal, 0, len(filtered))}
	for _, d := range filtered {
		c.Labels = append(c.Labels, d.CustomerName)
		set.Data = append(set.Data, d.DueAmount)
	}
	c.Datasets = []Dataset{set}
	return c
}

// inventory barras apiladas: una etiqueta por bodega, una pila de llenos y otra de vacíos
// con una serie por variante.
func inventory(levels []entity.InventoryLevel) Chart {
	var warehouses, variants []string
	seenW := map[string]int{}
	seenV := map[string]struct{}{}
	for _, l := range levels {
		if _, ok := seenW[l.WarehouseName]; !ok {
			seenW[l.WarehouseName] = len(warehouses)
			warehouses = append(warehouses, l.WarehouseName)
		}
		if _, ok := seenV[l.VariantName]; !ok {
			seenV[l.VariantName] = struct{}{}
			variants = append(variants, l.VariantName)
		}
	}
	sort.Strings(variants)

	filled := make(map[string][]decimal.Decimal, len(variants))
	empty := make(map[string][]decimal.Decimal, len(variants))
	for _, v := range variants {
		filled[v] = zeros(len(warehouses))
		empty[v] = zeros(len(warehouses))
	}
	for _, l := range levels {
		i := seenW[l.WarehouseName]
		filled[l.VariantName][i] = filled[l.VariantName][i].Add(decimal.NewFromInt(int64(l.Filled)))
		empty[l.VariantName][i] = empty[l.VariantName][i].Add(decimal.NewFromInt(int64(l.Empty)))
	}

	c := Chart{Type: ChartStackedBar, Title: "Inventario por bodega", Labels: warehouses}
	if c.Labels == nil {
		c.Labels = []string{}
	}
	c.Datasets = make([]Dataset, 0, 2*len(variants))
	for _, v := range variants {
		c.Datasets = append(c.Datasets,
			Dataset{Label: v + " llenos", Data: filled[v], Stack: "filled"},
			Dataset{Label: v + " vacíos", Data: empty[v], Stack: "empty"},
		)
	}
	return c
}

func zeros(n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}
