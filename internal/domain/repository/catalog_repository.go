package repository

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// CatalogRepository puerto CRUD común a los datos de referencia (clientes, variantes,
// bodegas, modos de pago, cuentas bancarias). T es la entidad y In el cuerpo de alta/edición.
type CatalogRepository[T any, In any] interface {
	List(ctx context.Context, q entity.PageQuery) (*entity.Page[T], error)
	ListActive(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository clientes.
type CustomerRepository = CatalogRepository[entity.Customer, entity.CustomerInput]

// WarehouseRepository bodegas.
type WarehouseRepository = CatalogRepository[entity.Warehouse, entity.WarehouseInput]

// PaymentModeRepository modos de pago.
type PaymentModeRepository = CatalogRepository[entity.PaymentMode, entity.PaymentModeInput]

// BankAccountRepository cuentas bancarias.
type BankAccountRepository = CatalogRepository[entity.BankAccount, entity.BankAccountInput]

// VariantRepository variantes y su precio.
type VariantRepository interface {
	CatalogRepository[entity.Variant, entity.VariantInput]
	// UpdatePricing devuelve domain.ErrNotFound si la variante aún no tiene precio registrado.
	UpdatePricing(ctx context.Context, variantID int64, p entity.VariantPricing) (*entity.VariantPricing, error)
	CreatePricing(ctx context.Context, p entity.VariantPricing) (*entity.VariantPricing, error)
}
