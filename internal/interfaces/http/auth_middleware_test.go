package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	apphttp "github.com/jhoicas/gasagency-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gasagency-backoffice/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "42"
	testIssuer    = "gasagency-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y recuperar la sesión
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(store session.Store, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, store),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			sess, ok := session.FromContext(c.UserContext())
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         ok,
				"role":       apphttp.GetRole(c),
				"session_id": sess.ID,
			})
		},
	)
	return app
}

// tokenForRole guarda una sesión nueva y genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, store session.Store, role string) (string, *session.Session) {
	t.Helper()
	sess := session.New(time.Hour)
	store.Save(sess)
	tok, err := pkgjwt.Generate(testJWTSecret, sess.ID, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok, sess
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	store := session.NewMemoryStore()
	app := buildTestApp(store, "admin")
	header, sess := tokenForRole(t, store, "admin")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la sesión viaja en el contexto de la petición")
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, sess.ID, body["session_id"])
}

func TestRequireRole_ContadorAccedeRutaAdminOContador(t *testing.T) {
	store := session.NewMemoryStore()
	app := buildTestApp(store, "admin", "accountant")
	header, _ := tokenForRole(t, store, "accountant")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_OperadorBloqueadoEnRutaAdmin(t *testing.T) {
	store := session.NewMemoryStore()
	app := buildTestApp(store, "admin")
	header, _ := tokenForRole(t, store, "operator")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	store := session.NewMemoryStore()
	app := buildTestApp(store, "admin")
	header, _ := tokenForRole(t, store, "")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(session.NewMemoryStore(), "admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(session.NewMemoryStore(), "admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_SesionEliminada_Retorna401SessionExpired(t *testing.T) {
	store := session.NewMemoryStore()
	app := buildTestApp(store, "admin")
	header, sess := tokenForRole(t, store, "admin")
	store.Delete(sess.ID) // refresh fallido o logout

	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_EXPIRED")
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	store := session.NewMemoryStore()
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, store), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"session_id": apphttp.GetSessionID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	header, sess := tokenForRole(t, store, "admin")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, sess.ID, body["session_id"])
	assert.Equal(t, "admin", body["role"])
}
