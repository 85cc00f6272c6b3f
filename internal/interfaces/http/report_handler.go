package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// ReportHandler reportes tabulares y exportaciones.
type ReportHandler struct {
	svc *report.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// List godoc
// @Summary      Reporte tabular
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        kind        path   string  true   "sales | empty-returns | expenses | bank-deposits | payments | stock"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Param        customerId  query  int     false  "filtrar por cliente"
// @Param        page        query  int     false  "página (desde 0)"
// @Param        size        query  int     false  "tamaño (máx. 100)"
// @Success      200  {object}  dto.PageResponse[entity.ReportRow]
// @Router       /api/reports/{kind} [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	kind, q, err := reportQuery(c)
	if err != nil {
		return err
	}
	p, err := h.svc.List(c.UserContext(), kind, q)
	if err != nil {
		return err
	}
	items := p.Items
	if items == nil {
		items = []entity.ReportRow{}
	}
	return c.JSON(dto.PageResponse[entity.ReportRow]{
		Items: items, Page: p.Page, Size: p.Size, TotalPages: p.TotalPages, TotalElements: p.TotalElements,
	})
}

// Export godoc
// @Summary      Exportar reporte tabular a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind  path  string  true  "tipo de reporte"
// @Router       /api/reports/{kind}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	kind, q, err := reportQuery(c)
	if err != nil {
		return err
	}
	f, err := h.svc.ExportXLSX(c.UserContext(), kind, q)
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

// SummaryPDF godoc
// @Summary      Resumen del periodo en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Router       /api/reports/summary/pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	f, err := h.svc.SummaryPDF(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

// LedgerPDF godoc
// @Summary      Estado de cuenta del cliente en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del cliente"
// @Router       /api/customers/{id}/ledger/statement.pdf [get]
func (h *ReportHandler) LedgerPDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.svc.LedgerPDF(c.UserContext(), id)
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

// LedgerXLSX godoc
// @Summary      Estado de cuenta del cliente en XLSX
// @Tags         reports
// @Security     Bearer
// @Param        id  path  int  true  "ID del cliente"
// @Router       /api/customers/{id}/ledger/statement.xlsx [get]
func (h *ReportHandler) LedgerXLSX(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.svc.LedgerXLSX(c.UserContext(), id)
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

func reportQuery(c *fiber.Ctx) (entity.ReportKind, entity.ReportQuery, error) {
	kind := entity.ReportKind(c.Params("kind"))
	from, err := queryDate(c, "from")
	if err != nil {
		return kind, entity.ReportQuery{}, err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return kind, entity.ReportQuery{}, err
	}
	q := entity.ReportQuery{From: from, To: to, PageQuery: pageQuery(c)}
	if cid := int64(c.QueryInt("customerId", 0)); cid > 0 {
		q.CustomerID = &cid
	}
	return kind, q, nil
}
