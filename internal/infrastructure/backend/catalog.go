package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
)

var (
	_ repository.CustomerRepository    = (*CatalogRepo[entity.Customer, entity.CustomerInput])(nil)
	_ repository.WarehouseRepository   = (*CatalogRepo[entity.Warehouse, entity.WarehouseInput])(nil)
	_ repository.PaymentModeRepository = (*CatalogRepo[entity.PaymentMode, entity.PaymentModeInput])(nil)
	_ repository.BankAccountRepository = (*CatalogRepo[entity.BankAccount, entity.BankAccountInput])(nil)
)

// Recursos REST de datos de referencia.
const (
	ResourceCustomers    = "/customers"
	ResourceVariants     = "/variants"
	ResourceWarehouses   = "/warehouses"
	ResourcePaymentModes = "/payment-modes"
	ResourceBankAccounts = "/bank-accounts"
)

// CatalogRepo adaptador CRUD genérico sobre un recurso del backend:
//
//	GET    {resource}?page=&size=&search=
//	GET    {resource}/active
//	GET    {resource}/{id}
//	POST   {resource}
//	PUT    {resource}/{id}
//	DELETE {resource}/{id}
type CatalogRepo[T any, In any] struct {
	c        *Client
	resource string
}

// NewCatalogRepo construye el adaptador para resource (ej. ResourceCustomers).
func NewCatalogRepo[T any, In any](c *Client, resource string) *CatalogRepo[T, In] {
	return &CatalogRepo[T, In]{c: c, resource: resource}
}

// NewCustomerRepository clientes.
func NewCustomerRepository(c *Client) *CatalogRepo[entity.Customer, entity.CustomerInput] {
	return NewCatalogRepo[entity.Customer, entity.CustomerInput](c, ResourceCustomers)
}

// NewWarehouseRepository bodegas.
func NewWarehouseRepository(c *Client) *CatalogRepo[entity.Warehouse, entity.WarehouseInput] {
	return NewCatalogRepo[entity.Warehouse, entity.WarehouseInput](c, ResourceWarehouses)
}

// NewPaymentModeRepository modos de pago.
func NewPaymentModeRepository(c *Client) *CatalogRepo[entity.PaymentMode, entity.PaymentModeInput] {
	return NewCatalogRepo[entity.PaymentMode, entity.PaymentModeInput](c, ResourcePaymentModes)
}

// NewBankAccountRepository cuentas bancarias.
func NewBankAccountRepository(c *Client) *CatalogRepo[entity.BankAccount, entity.BankAccountInput] {
	return NewCatalogRepo[entity.BankAccount, entity.BankAccountInput](c, ResourceBankAccounts)
}

// List listado paginado con búsqueda opcional.
func (r *CatalogRepo[T, In]) List(ctx context.Context, q entity.PageQuery) (*entity.Page[T], error) {
	var page entity.Page[T]
	if err := r.c.Get(ctx, r.resource, pageValues(q), &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}

// ListActive registros activos (alimenta los selectores de los formularios).
func (r *CatalogRepo[T, In]) ListActive(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.c.Get(ctx, r.resource+"/active", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// GetByID obtiene un registro; 404 llega como domain.ErrNotFound.
func (r *CatalogRepo[T, In]) GetByID(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.c.Get(ctx, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create da de alta un registro.
func (r *CatalogRepo[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	if err := r.c.Post(ctx, r.resource, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update reemplaza los datos de un registro.
func (r *CatalogRepo[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	var out T
	if err := r.c.Put(ctx, r.itemPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina (o desactiva, según el backend) un registro.
func (r *CatalogRepo[T, In]) Delete(ctx context.Context, id int64) error {
	return r.c.Delete(ctx, r.itemPath(id))
}

func (r *CatalogRepo[T, In]) itemPath(id int64) string {
	return r.resource + "/" + strconv.FormatInt(id, 10)
}

func pageValues(q entity.PageQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}
