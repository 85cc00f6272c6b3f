package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/usecase"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// CustomerHandler búsqueda y variantes elegibles; el CRUD lo cubre CatalogHandler.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar clientes activos por nombre o teléfono
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "término"
// @Success      200  {array}  entity.Customer
// @Failure      409  {object}  dto.ErrorResponse  "búsqueda reemplazada"
// @Router       /api/customers/search [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	if out == nil {
		out = []entity.Customer{}
	}
	return c.JSON(out)
}

// EligibleVariants godoc
// @Summary      Variantes que se pueden vender al cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {array}  entity.Variant
// @Router       /api/customers/{id}/variants [get]
func (h *CustomerHandler) EligibleVariants(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.EligibleVariants(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		out = []entity.Variant{}
	}
	return c.JSON(out)
}
