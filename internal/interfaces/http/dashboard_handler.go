package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/alerts"
	"github.com/jhoicas/gasagency-backoffice/internal/application/analytics"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
)

// DashboardHandler dashboard y feed de alertas.
type DashboardHandler struct {
	uc   *analytics.UseCase
	feed *alerts.Feed
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase, feed *alerts.Feed) *DashboardHandler {
	return &DashboardHandler{uc: uc, feed: feed}
}

// Get godoc
// @Summary      KPIs y gráficos del periodo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD. Default: primer día del mes."
// @Param        to    query  string  false  "YYYY-MM-DD. Default: hoy."
// @Success      200  {object}  analytics.Dashboard
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas activas, más recientes primero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Alert
// @Router       /api/alerts [get]
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	return c.JSON(h.feed.List(c.UserContext()))
}

// DismissAlert godoc
// @Summary      Descartar una alerta del feed
// @Tags         dashboard
// @Security     Bearer
// @Param        key  query  string  true  "clave de la alerta"
// @Success      204
// @Router       /api/alerts [delete]
func (h *DashboardHandler) DismissAlert(c *fiber.Ctx) error {
	if !h.feed.Dismiss(c.Query("key")) {
		return domain.ErrNotFound
	}
	return c.SendStatus(fiber.StatusNoContent)
}
