package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
)

var (
	_ repository.ReportRepository    = (*ReportRepo)(nil)
	_ repository.DashboardRepository = (*ReportRepo)(nil)
	_ repository.AlertRepository     = (*ReportRepo)(nil)
)

// ReportRepo reportes, resumen del dashboard y alertas activas. Todo llega ya agregado.
type ReportRepo struct {
	c *Client
}

// NewReportRepository construye el adaptador.
func NewReportRepository(c *Client) *ReportRepo {
	return &ReportRepo{c: c}
}

// List GET /reports/{kind}?from=&to=&customerId=&page=&size=.
func (r *ReportRepo) List(ctx context.Context, kind entity.ReportKind, q entity.ReportQuery) (*entity.Page[entity.ReportRow], error) {
	v := pageValues(q.PageQuery)
	setPeriod(v, q.From, q.To)
	if q.CustomerID != nil {
		v.Set("customerId", strconv.FormatInt(*q.CustomerID, 10))
	}
	var page entity.Page[entity.ReportRow]
	if err := r.c.Get(ctx, "/reports/"+string(kind), v, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []entity.ReportRow{}
	}
	return &page, nil
}

// PeriodSummary GET /reports/summary?from=&to=.
func (r *ReportRepo) PeriodSummary(ctx context.Context, from, to entity.Date) (*entity.PeriodSummary, error) {
	v := url.Values{}
	setPeriod(v, from, to)
	var s entity.PeriodSummary
	if err := r.c.Get(ctx, "/reports/summary", v, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Summary GET /dashboard/summary?from=&to=.
func (r *ReportRepo) Summary(ctx context.Context, from, to entity.Date) (*entity.DashboardSummary, error) {
	v := url.Values{}
	setPeriod(v, from, to)
	var s entity.DashboardSummary
	if err := r.c.Get(ctx, "/dashboard/summary", v, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActive GET /alerts/active.
func (r *ReportRepo) ListActive(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert
	if err := r.c.Get(ctx, "/alerts/active", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func setPeriod(v url.Values, from, to entity.Date) {
	if !from.IsZero() {
		v.Set("from", from.String())
	}
	if !to.IsZero() {
		v.Set("to", to.String())
	}
}
