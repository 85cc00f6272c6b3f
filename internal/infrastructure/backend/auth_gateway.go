package backend

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
)

var _ repository.AuthGateway = (*AuthGateway)(nil)

// AuthGateway login/logout contra el backend; las cookies quedan en el jar de la sesión.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway construye el adaptador.
func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

// Login POST /auth/login.
func (g *AuthGateway) Login(ctx context.Context, creds entity.Credentials) (*entity.User, error) {
	var u entity.User
	if err := g.c.Post(ctx, "/auth/login", creds, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout POST /auth/logout.
func (g *AuthGateway) Logout(ctx context.Context) error {
	return g.c.Post(ctx, "/auth/logout", nil, nil)
}

// Me GET /auth/me.
func (g *AuthGateway) Me(ctx context.Context) (*entity.User, error) {
	var u entity.User
	if err := g.c.Get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
