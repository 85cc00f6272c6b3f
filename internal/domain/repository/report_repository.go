package repository

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// ReportRepository reportes ya agregados por el backend.
type ReportRepository interface {
	List(ctx context.Context, kind entity.ReportKind, q entity.ReportQuery) (*entity.Page[entity.ReportRow], error)
	PeriodSummary(ctx context.Context, from, to entity.Date) (*entity.PeriodSummary, error)
}

// DashboardRepository resumen precalculado del dashboard.
type DashboardRepository interface {
	Summary(ctx context.Context, from, to entity.Date) (*entity.DashboardSummary, error)
}
