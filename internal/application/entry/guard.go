package entry

import (
	"sync"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
)

// SubmitGuard permite como máximo un envío en vuelo por (sesión, formulario). Un segundo envío
// mientras el primero no termina se rechaza con domain.ErrSubmitInProgress.
type SubmitGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewSubmitGuard construye el guard.
func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inflight: make(map[string]struct{})}
}

// Acquire reserva la clave; release la libera (llamar siempre, con éxito o con error).
func (g *SubmitGuard) Acquire(sessionID, form string) (release func(), err error) {
	key := sessionID + "|" + form
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return nil, domain.ErrSubmitInProgress
	}
	g.inflight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		})
	}, nil
}

// InFlight indica si hay un envío en curso para la clave.
func (g *SubmitGuard) InFlight(sessionID, form string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inflight[sessionID+"|"+form]
	return ok
}
