// Package auth login, logout y usuario actual. Cada login crea una sesión server-side con su
// propio cookie jar; el navegador recibe un JWT que solo identifica esa sesión.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	"github.com/jhoicas/gasagency-backoffice/pkg/jwt"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LoginResult token para el navegador y el usuario autenticado.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      entity.User
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	gateway  repository.AuthGateway
	sessions session.Store
	jwtCfg   JWTConfig
	ttl      time.Duration
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. ttl es la vida de la sesión server-side.
func NewUseCase(gateway repository.AuthGateway, sessions session.Store, jwtCfg JWTConfig, ttl time.Duration, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{gateway: gateway, sessions: sessions, jwtCfg: jwtCfg, ttl: ttl, log: log}
}

// Login autentica contra el backend dentro de una sesión nueva. Si el backend rechaza las
// credenciales la sesión se descarta y se devuelve domain.ErrUnauthorized.
func (uc *UseCase) Login(ctx context.Context, creds entity.Credentials) (*LoginResult, error) {
	if err := validation.Struct(creds).OrNil(); err != nil {
		return nil, err
	}

	sess := session.New(uc.ttl)
	user, err := uc.gateway.Login(session.WithSession(ctx, sess), creds)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Info().Str("username", creds.Username).Msg("auth: credenciales rechazadas")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	sess.User = *user

	expMinutes := uc.jwtCfg.ExpMinutes
	if ttlMin := int(uc.ttl / time.Minute); ttlMin > 0 && (expMinutes <= 0 || ttlMin < expMinutes) {
		expMinutes = ttlMin
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, strconv.FormatInt(user.ID, 10), user.Role, uc.jwtCfg.Issuer, expMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: token: %w", err)
	}
	uc.sessions.Save(sess)
	uc.log.Info().Str("session_id", sess.ID).Str("username", user.Username).Msg("auth: sesión iniciada")

	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(expMinutes) * time.Minute),
		User:      *user,
	}, nil
}

// Logout cierra la sesión en el backend (mejor esfuerzo) y la elimina del store.
func (uc *UseCase) Logout(ctx context.Context) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := uc.gateway.Logout(ctx); err != nil {
		uc.log.Warn().Err(err).Str("session_id", sess.ID).Msg("auth: logout en backend falló")
	}
	uc.sessions.Delete(sess.ID)
	return nil
}

// Me devuelve el usuario de la sesión consultando al backend; actualiza la copia local.
func (uc *UseCase) Me(ctx context.Context) (*entity.User, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.gateway.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: me: %w", err)
	}
	sess.User = *user
	return user, nil
}
