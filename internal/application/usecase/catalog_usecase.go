package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/gasagency-backoffice/internal/application/cache"
	"github.com/jhoicas/gasagency-backoffice/internal/application/events"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// CatalogUseCase CRUD de un dato de referencia con lista "activa" cacheada.
// Toda alta, edición o baja invalida la caché y publica el evento del tipo.
type CatalogUseCase[T any, In any] struct {
	repo   repository.CatalogRepository[T, In]
	active *cache.Entry[[]T]
	bus    *events.Bus
	kind   events.Kind
	log    *logger.Logger
}

// NewCatalogUseCase construye el caso de uso; active es la entrada de caché de la lista activa.
func NewCatalogUseCase[T any, In any](
	repo repository.CatalogRepository[T, In],
	active *cache.Entry[[]T],
	bus *events.Bus,
	kind events.Kind,
	log *logger.Logger,
) *CatalogUseCase[T, In] {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase[T, In]{repo: repo, active: active, bus: bus, kind: kind, log: log}
}

// List listado paginado (sin caché).
func (uc *CatalogUseCase[T, In]) List(ctx context.Context, q entity.PageQuery) (*entity.Page[T], error) {
	return uc.repo.List(ctx, q.Normalize())
}

// Active lista activa compartida entre todos los formularios.
func (uc *CatalogUseCase[T, In]) Active(ctx context.Context) ([]T, error) {
	return uc.active.Get(ctx, uc.repo.ListActive)
}

// GetByID obtiene un registro.
func (uc *CatalogUseCase[T, In]) GetByID(ctx context.Context, id int64) (*T, error) {
	return uc.repo.GetByID(ctx, id)
}

// Create valida y da de alta.
func (uc *CatalogUseCase[T, In]) Create(ctx context.Context, in In) (*T, error) {
	if err := validation.Struct(in).OrNil(); err != nil {
		return nil, err
	}
	out, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, 0)
	return out, nil
}

// Update valida y reemplaza.
func (uc *CatalogUseCase[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	if err := validation.Struct(in).OrNil(); err != nil {
		return nil, err
	}
	out, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, id)
	return out, nil
}

// Delete elimina.
func (uc *CatalogUseCase[T, In]) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.changed(ctx, id)
	return nil
}

// InvalidateCache descarta la lista activa.
func (uc *CatalogUseCase[T, In]) InvalidateCache(ctx context.Context) error {
	if err := uc.active.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidar %s: %w", uc.kind, err)
	}
	return nil
}

func (uc *CatalogUseCase[T, In]) changed(ctx context.Context, id int64) {
	if err := uc.InvalidateCache(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: no se pudo invalidar la caché")
	}
	if uc.bus != nil {
		_ = uc.bus.Publish(ctx, events.Event{Kind: uc.kind, EntityID: id})
	}
}

// WarehouseUseCase bodegas.
type WarehouseUseCase = CatalogUseCase[entity.Warehouse, entity.WarehouseInput]

// PaymentModeUseCase modos de pago.
type PaymentModeUseCase = CatalogUseCase[entity.PaymentMode, entity.PaymentModeInput]

// BankAccountUseCase cuentas bancarias.
type BankAccountUseCase = CatalogUseCase[entity.BankAccount, entity.BankAccountInput]
