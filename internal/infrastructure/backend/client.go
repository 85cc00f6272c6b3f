// Package backend implementa el cliente REST hacia el backend autoritativo y los adaptadores
// de repositorio que lo usan.
//
// Cadena por petición:
//
//	sesión (cookies + XSRF) → timeout → reintento ante 503 (100ms, 200ms, 400ms)
//	→ 401: un único refresh + una repetición → si falla, la sesión se descarta.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

const (
	xsrfCookie   = "XSRF-TOKEN"
	xsrfHeader   = "X-XSRF-TOKEN"
	requestIDHdr = "X-Request-ID"
	maxBodyBytes = 10 << 20
)

// Config parámetros del cliente.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RefreshPath    string
}

// Option personaliza el cliente.
type Option func(*Client)

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionExpiredHandler se invoca con el id de sesión cuando el refresh falla.
func WithSessionExpiredHandler(fn func(sessionID string)) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// WithSleeper reemplaza la espera entre reintentos (tests).
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithTransport reemplaza el http.RoundTripper compartido.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// Client cliente HTTP del backend. Es seguro para uso concurrente; el estado por usuario vive
// en la session.Session que viaja en el contexto.
type Client struct {
	cfg              Config
	base             *url.URL
	transport        http.RoundTripper
	log              *logger.Logger
	onSessionExpired func(sessionID string)
	sleep            func(ctx context.Context, d time.Duration) error
}

// NewClient construye el cliente.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend: base URL inválida %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 100 * time.Millisecond
	}
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = "/auth/refresh"
	}
	c := &Client{
		cfg:       cfg,
		base:      base,
		transport: http.DefaultTransport,
		log:       logger.Nop(),
		sleep:     sleepCtx,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ── Envelope ──────────────────────────────────────────────────────────────────

type envelope struct {
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     *envelopeError  `json:"error"`
	Timestamp string          `json:"timestamp"`
	RequestID string          `json:"requestId"`
}

type envelopeError struct {
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

// detailsText devuelve details como texto: el string tal cual o el JSON crudo.
func (e *envelopeError) detailsText() string {
	if e == nil || len(e.Details) == 0 || string(e.Details) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Details, &s); err == nil {
		return s
	}
	return string(e.Details)
}

// ── API pública ───────────────────────────────────────────────────────────────

// Get GET path?query y decodifica data en out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post POST path con body JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put PUT path con body JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete DELETE path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do ejecuta la petición con la sesión del contexto aplicando reintentos y refresh.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := c.withRetry(ctx, sess, method, path, query, body, out)
	if err == nil || !errors.Is(err, domain.ErrUnauthorized) || c.isAuthPath(path) {
		return err
	}

	// Un único intento de refresh por petición.
	c.log.Info().Str("session_id", sess.ID).Str("path", path).Msg("backend: 401, intentando refresh de sesión")
	if rerr := c.withRetry(ctx, sess, http.MethodPost, c.cfg.RefreshPath, nil, nil, nil); rerr != nil {
		c.expire(sess, rerr)
		return fmt.Errorf("%w: %v", domain.ErrSessionExpired, rerr)
	}
	err = c.withRetry(ctx, sess, method, path, query, body, out)
	if errors.Is(err, domain.ErrUnauthorized) {
		c.expire(sess, err)
		return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	return err
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (c *Client) isAuthPath(path string) bool {
	return path == c.cfg.RefreshPath || path == "/auth/login" || path == "/auth/logout"
}

func (c *Client) expire(sess *session.Session, cause error) {
	c.log.Warn().Err(cause).Str("session_id", sess.ID).Msg("backend: refresh fallido, sesión descartada")
	if c.onSessionExpired != nil {
		c.onSessionExpired(sess.ID)
	}
}

// withRetry reintenta solo ante 503. 409 y el resto se devuelven de inmediato.
func (c *Client) withRetry(ctx context.Context, sess *session.Session, method, path string, query url.Values, body, out any) error {
	for attempt := 0; ; attempt++ {
		err := c.send(ctx, sess, method, path, query, body, out)
		if err == nil || !errors.Is(err, domain.ErrServiceBusy) || attempt >= c.cfg.MaxRetries {
			if err != nil && errors.Is(err, domain.ErrServiceBusy) {
				c.log.Error().Str("path", path).Int("attempt", attempt+1).Msg("backend: reintentos agotados (503)")
			}
			return err
		}
		delay := c.cfg.RetryBaseDelay << attempt
		c.log.Warn().Str("path", path).Int("attempt", attempt+1).Dur("delay", delay).Msg("backend: 503, reintentando")
		if serr := c.sleep(ctx, delay); serr != nil {
			return serr
		}
	}
}

func (c *Client) send(ctx context.Context, sess *session.Session, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar body: %w", err)
		}
		payload = b
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	target := c.resolve(path, query)
	req, err := http.NewRequestWithContext(reqCtx, method, target.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("backend: construir request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHdr, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if isMutating(method) {
		if tok := c.xsrfToken(sess); tok != "" {
			req.Header.Set(xsrfHeader, tok)
		}
	}

	httpClient := &http.Client{Transport: c.transport, Jar: sess.Jar}
	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &domain.APIError{Status: 0, Message: err.Error(), RequestID: requestID}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.APIError{Status: 0, Message: "leer respuesta: " + err.Error(), RequestID: requestID}
	}
	return decode(resp.StatusCode, raw, requestID, out)
}

func decode(status int, raw []byte, requestID string, out any) error {
	var env envelope
	jsonErr := json.Unmarshal(raw, &env)

	if status >= http.StatusBadRequest || (jsonErr == nil && env.Error != nil) {
		apiErr := &domain.APIError{Status: status, RequestID: requestID}
		if status < http.StatusBadRequest {
			apiErr.Status = http.StatusUnprocessableEntity
		}
		if jsonErr == nil {
			apiErr.Message = env.Message
			if env.RequestID != "" {
				apiErr.RequestID = env.RequestID
			}
			if env.Error != nil {
				apiErr.Code = env.Error.Code
				apiErr.Details = env.Error.detailsText()
			}
		} else {
			apiErr.Details = truncate(strings.TrimSpace(string(raw)), 200)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if jsonErr != nil {
		return fmt.Errorf("backend: respuesta no es JSON: %w", jsonErr)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("backend: decodificar data: %w", err)
	}
	return nil
}

func (c *Client) resolve(path string, query url.Values) *url.URL {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func (c *Client) xsrfToken(sess *session.Session) string {
	if sess.Jar == nil {
		return ""
	}
	for _, ck := range sess.Jar.Cookies(c.base) {
		if ck.Name == xsrfCookie {
			return ck.Value
		}
	}
	return ""
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
