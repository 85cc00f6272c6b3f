package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/auth"
	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// AuthHandler login, logout y usuario actual.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario y contraseña del backend"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bodyInto(c, &in); err != nil {
		return err
	}
	res, err := h.uc.Login(c.UserContext(), entity.Credentials{Username: in.Username, Password: in.Password})
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: toUserResponse(res.User)})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.uc.Me(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(*u))
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role}
}
