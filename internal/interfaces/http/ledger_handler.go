package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	appledger "github.com/jhoicas/gasagency-backoffice/internal/application/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
)

// LedgerHandler ledger de cilindros por cliente.
type LedgerHandler struct {
	uc *appledger.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *appledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Get godoc
// @Summary      Ledger del cliente con balances por variante y saldo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  ledger.View
// @Router       /api/customers/{id}/ledger [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.uc.GetLedger(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Due godoc
// @Summary      Saldo pendiente autoritativo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  dto.DueResponse
// @Router       /api/customers/{id}/due [get]
func (h *LedgerHandler) Due(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	due, err := h.uc.GetDue(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.DueResponse{CustomerID: id, DueAmount: due})
}

// UpdateEntry godoc
// @Summary      Corregir una de las entradas recientes
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  int                           true  "ID del cliente"
// @Param        entryId  path  int                           true  "ID de la entrada"
// @Param        body     body  dto.UpdateLedgerEntryRequest  true  "campos editados y motivo"
// @Success      200  {object}  ledger.View
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "entrada fuera de la ventana editable"
// @Router       /api/customers/{id}/ledger/{entryId} [put]
func (h *LedgerHandler) UpdateEntry(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	entryID, err := paramID(c, "entryId")
	if err != nil {
		return err
	}
	var in dto.UpdateLedgerEntryRequest
	if err := bodyInto(c, &in); err != nil {
		return err
	}
	view, err := h.uc.UpdateEntry(c.UserContext(), customerID, entryID, appledger.UpdateRequest{
		EditableFields: ledger.EditableFields{
			FilledOut: in.FilledOut, EmptyIn: in.EmptyIn,
			TotalAmount: in.TotalAmount, AmountReceived: in.AmountReceived,
		},
		ChangeReason: in.ChangeReason,
	})
	if err != nil {
		return err
	}
	return c.JSON(view)
}
