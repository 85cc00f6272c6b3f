package repository

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// AlertRepository alertas activas (fuente de polling).
type AlertRepository interface {
	ListActive(ctx context.Context) ([]entity.Alert, error)
}
