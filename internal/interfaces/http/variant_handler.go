package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/usecase"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// VariantHandler precio de variantes.
type VariantHandler struct {
	uc *usecase.VariantUseCase
}

// NewVariantHandler construye el handler.
func NewVariantHandler(uc *usecase.VariantUseCase) *VariantHandler {
	return &VariantHandler{uc: uc}
}

// UpsertPricing godoc
// @Summary      Actualizar (o crear) el precio de una variante
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la variante"
// @Param        body  body  entity.VariantPricing  true  "precio"
// @Success      200   {object}  entity.VariantPricing
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/pricing [put]
func (h *VariantHandler) UpsertPricing(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in entity.VariantPricing
	if err := bodyInto(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpsertPricing(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
