package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/application/entry"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
)

// EntryHandler formularios transaccionales: validación en vivo y envío.
type EntryHandler struct {
	svc *entry.Service
}

// NewEntryHandler construye el handler.
func NewEntryHandler(svc *entry.Service) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// Mount registra POST /{form} y POST /{form}/validate para cada formulario.
//
// @Summary      Registrar venta / devolución / gasto / depósito / pago
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.Receipt
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "envío en curso"
// @Failure      422  {object}  dto.ErrorResponse  "pago mayor al saldo"
// @Router       /api/entries/{form} [post]
func (h *EntryHandler) Mount(r fiber.Router) {
	r.Post("/"+entry.FormSale, submitRoute(h.svc.SubmitSale))
	r.Post("/"+entry.FormSale+"/validate", validateRoute(h.svc.ValidateSale))
	r.Post("/"+entry.FormEmptyReturn, submitRoute(h.svc.SubmitEmptyReturn))
	r.Post("/"+entry.FormEmptyReturn+"/validate", validateRoute(h.svc.ValidateEmptyReturn))
	r.Post("/"+entry.FormExpense, submitRoute(h.svc.SubmitExpense))
	r.Post("/"+entry.FormExpense+"/validate", validateRoute(h.svc.ValidateExpense))
	r.Post("/"+entry.FormBankDeposit, submitRoute(h.svc.SubmitBankDeposit))
	r.Post("/"+entry.FormBankDeposit+"/validate", validateRoute(h.svc.ValidateBankDeposit))
	r.Post("/"+entry.FormPayment, submitRoute(h.svc.SubmitPayment))
	r.Post("/"+entry.FormPayment+"/validate", validateRoute(h.svc.ValidatePayment))
}

func submitRoute[T any](fn func(context.Context, T) (*entity.Receipt, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in T
		if err := bodyInto(c, &in); err != nil {
			return err
		}
		receipt, err := fn(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(receipt)
	}
}

func validateRoute[T any](fn func(context.Context, T) (*validation.Errors, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in T
		if err := bodyInto(c, &in); err != nil {
			return err
		}
		errs, err := fn(c.UserContext(), in)
		if err != nil {
			return err
		}
		if errs.Empty() {
			return c.JSON(dto.ValidationResponse{Valid: true})
		}
		return c.JSON(dto.ValidationResponse{Valid: false, Fields: errs.Fields})
	}
}
