package repository

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// AuthGateway autenticación contra el backend. Las cookies de sesión quedan en el jar de la
// sesión presente en ctx.
type AuthGateway interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*entity.User, error)
}
