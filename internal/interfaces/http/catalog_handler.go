package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// catalogService contrato que cumplen los casos de uso de datos de referencia.
type catalogService[T any, In any] interface {
	List(ctx context.Context, q entity.PageQuery) (*entity.Page[T], error)
	Active(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogHandler CRUD HTTP común a clientes, variantes, bodegas, modos de pago y cuentas.
type CatalogHandler[T any, In any] struct {
	uc catalogService[T, In]
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler[T any, In any](uc catalogService[T, In]) *CatalogHandler[T, In] {
	return &CatalogHandler[T, In]{uc: uc}
}

// Mount registra las rutas: lectura para cualquier rol, escritura solo para writeGuard.
func (h *CatalogHandler[T, In]) Mount(r fiber.Router, writeGuard fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/active", h.Active)
	r.Get("/:id", h.GetByID)
	r.Post("/", writeGuard, h.Create)
	r.Put("/:id", writeGuard, h.Update)
	r.Delete("/:id", writeGuard, h.Delete)
}

// List GET /?page&size&search
func (h *CatalogHandler[T, In]) List(c *fiber.Ctx) error {
	p, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(dto.PageResponse[T]{
		Items: items, Page: p.Page, Size: p.Size, TotalPages: p.TotalPages, TotalElements: p.TotalElements,
	})
}

// Active GET /active (lista cacheada).
func (h *CatalogHandler[T, In]) Active(c *fiber.Ctx) error {
	items, err := h.uc.Active(c.UserContext())
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(items)
}

// GetByID GET /:id
func (h *CatalogHandler[T, In]) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create POST /
func (h *CatalogHandler[T, In]) Create(c *fiber.Ctx) error {
	var in In
	if err := bodyInto(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /:id
func (h *CatalogHandler[T, In]) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in In
	if err := bodyInto(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete DELETE /:id
func (h *CatalogHandler[T, In]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
