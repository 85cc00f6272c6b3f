// Package session mantiene la sesión del backend del lado del BFF y la propaga de forma
// explícita por context.Context. El navegador solo conoce un JWT con el id de sesión.
package session

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// Session estado de autenticación de un usuario contra el backend.
type Session struct {
	ID        string
	User      entity.User
	Jar       http.CookieJar
	CreatedAt time.Time
	ExpiresAt time.Time
}

// New crea una sesión anónima con su propio cookie jar.
func New(ttl time.Duration) *Session {
	jar, _ := cookiejar.New(nil) // nunca falla sin PublicSuffixList
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Jar:       jar,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired indica si la sesión superó su vida útil.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type ctxKey struct{}

// WithSession devuelve un contexto que transporta la sesión.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext recupera la sesión del contexto, si existe.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// Store almacén de sesiones activas.
type Store interface {
	Save(s *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// MemoryStore Store en memoria con expiración perezosa.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore construye el store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session), now: time.Now}
}

// Save guarda o reemplaza la sesión.
func (m *MemoryStore) Save(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get devuelve la sesión si existe y no expiró; las expiradas se eliminan.
func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.Expired(m.now()) {
		m.Delete(id)
		return nil, false
	}
	return s, true
}

// Delete elimina la sesión (logout o refresh fallido).
func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Sweep elimina las sesiones expiradas; se llama periódicamente desde main.
func (m *MemoryStore) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
