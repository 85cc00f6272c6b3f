package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/infrastructure/backend"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func writeEnvelope(w http.ResponseWriter, status int, data any, errCode string, details any) {
	body := map[string]any{"message": http.StatusText(status), "timestamp": "2024-01-01T00:00:00Z", "requestId": "req-1"}
	if data != nil {
		body["data"] = data
	}
	if errCode != "" {
		body["error"] = map[string]any{"code": errCode, "details": details}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, srv *httptest.Server, opts ...backend.Option) *backend.Client {
	t.Helper()
	c, err := backend.NewClient(backend.Config{
		BaseURL:        srv.URL + "/api",
		Timeout:        2 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: 100 * time.Millisecond,
	}, opts...)
	require.NoError(t, err)
	return c
}

func sessionCtx() (context.Context, *session.Session) {
	s := session.New(time.Hour)
	return session.WithSession(context.Background(), s), s
}

// ──────────────────────────────────────────────────────────────────────────────
// Envelope
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_DesenvuelveData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customers/7", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeEnvelope(w, http.StatusOK, map[string]any{"id": 7, "name": "Ramesh Gas"}, "", nil)
	}))
	defer srv.Close()

	ctx, _ := sessionCtx()
	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, newClient(t, srv).Get(ctx, "/customers/7", nil, &out))
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "Ramesh Gas", out.Name)
}

func TestClient_ErrorConDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, nil, "VALIDATION_ERROR", "El teléfono ya existe")
	}))
	defer srv.Close()

	ctx, _ := sessionCtx()
	err := newClient(t, srv).Post(ctx, "/customers", map[string]string{"name": "x"}, nil)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, "El teléfono ya existe", apiErr.Details)
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_SinSesion_NoAutorizado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no debe llegar al backend sin sesión")
	}))
	defer srv.Close()

	err := newClient(t, srv).Get(context.Background(), "/customers", nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_503_ReintentaConBackoff(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 4 {
			writeEnvelope(w, http.StatusServiceUnavailable, nil, "BUSY", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, []int{1}, "", nil)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	ctx, _ := sessionCtx()
	var out []int
	require.NoError(t, newClient(t, srv, backend.WithSleeper(rec.sleep)).Get(ctx, "/variants/active", nil, &out))

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, rec.delays)
	assert.Equal(t, []int{1}, out)
}

func TestClient_503_AgotaReintentos(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(w, http.StatusServiceUnavailable, nil, "BUSY", nil)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	ctx, _ := sessionCtx()
	err := newClient(t, srv, backend.WithSleeper(rec.sleep)).Get(ctx, "/variants/active", nil, nil)

	assert.ErrorIs(t, err, domain.ErrServiceBusy)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls), "1 intento + 3 reintentos")
}

func TestClient_409_NoSeReintenta(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(w, http.StatusConflict, nil, "DUPLICATE", "Venta duplicada")
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	ctx, _ := sessionCtx()
	err := newClient(t, srv, backend.WithSleeper(rec.sleep)).Post(ctx, "/sales", map[string]int{"customerId": 1}, nil)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, rec.delays)
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh de sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_401_RefrescaYRepite(t *testing.T) {
	var refreshed int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			atomic.AddInt32(&refreshed, 1)
			http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "nueva", Path: "/"})
			writeEnvelope(w, http.StatusOK, nil, "", nil)
		case "/api/customers/active":
			if ck, err := r.Cookie("SESSION"); err == nil && ck.Value == "nueva" {
				writeEnvelope(w, http.StatusOK, []int{1, 2}, "", nil)
				return
			}
			writeEnvelope(w, http.StatusUnauthorized, nil, "UNAUTHORIZED", nil)
		}
	}))
	defer srv.Close()

	ctx, _ := sessionCtx()
	var out []int
	require.NoError(t, newClient(t, srv).Get(ctx, "/customers/active", nil, &out))
	assert.Equal(t, []int{1, 2}, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshed))
}

func TestClient_401_RefreshFallido_ExpiraSesion(t *testing.T) {
	var refreshed int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshed, 1)
		}
		writeEnvelope(w, http.StatusUnauthorized, nil, "UNAUTHORIZED", nil)
	}))
	defer srv.Close()

	var expired string
	ctx, sess := sessionCtx()
	c := newClient(t, srv, backend.WithSessionExpiredHandler(func(id string) { expired = id }))
	err := c.Get(ctx, "/customers/active", nil, nil)

	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshed), "un único intento de refresh")
	assert.Equal(t, sess.ID, expired)
}

// ──────────────────────────────────────────────────────────────────────────────
// CSRF
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_EnviaXSRFEnMutaciones(t *testing.T) {
	var gotPost, gotGet string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gotGet = r.Header.Get("X-XSRF-TOKEN")
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok-123", Path: "/"})
		case http.MethodPost:
			gotPost = r.Header.Get("X-XSRF-TOKEN")
		}
		writeEnvelope(w, http.StatusOK, nil, "", nil)
	}))
	defer srv.Close()

	ctx, _ := sessionCtx()
	c := newClient(t, srv)
	require.NoError(t, c.Get(ctx, "/auth/me", nil, nil))
	require.NoError(t, c.Post(ctx, "/payments", map[string]int{"customerId": 1}, nil))

	assert.Empty(t, gotGet, "GET no lleva token CSRF")
	assert.Equal(t, "tok-123", gotPost)
}

func TestClient_FalloDeTransporte_EsErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := backend.NewClient(backend.Config{BaseURL: url, MaxRetries: 3})
	require.NoError(t, err)
	ctx, _ := sessionCtx()
	err = c.Get(ctx, "/customers", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}
