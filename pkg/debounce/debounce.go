// Package debounce colapsa ráfagas de peticiones (búsqueda mientras se escribe) en una sola
// evaluación por clave. Dentro de la ventana:
//
//   - llamadas con el mismo término comparten una única evaluación;
//   - un término distinto reemplaza al pendiente (sus llamadores reciben ErrSuperseded);
//   - repetir el último término evaluado devuelve el resultado ya calculado, salvo que
//     ForgetResults lo haya descartado (los datos de origen cambiaron).
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded se devuelve a los llamadores cuyo término fue reemplazado antes de evaluarse.
var ErrSuperseded = errors.New("debounce: término reemplazado por uno más reciente")

// Func evalúa un término.
type Func[T any] func(ctx context.Context, term string) (T, error)

type result[T any] struct {
	val T
	err error
}

type slot[T any] struct {
	// pendiente de evaluar
	seq     uint64
	term    string
	fn      Func[T]
	ctx     context.Context
	timer   *time.Timer
	waiters []chan result[T]

	// en evaluación
	running        bool
	runningTerm    string
	runningWaiters []chan result[T]

	// último evaluado
	hasLast    bool
	lastTerm   string
	lastResult result[T]
	lastAt     time.Time
}

// Group mantiene un slot de debounce por clave (ej. sesión + pantalla).
type Group[T any] struct {
	window time.Duration

	mu    sync.Mutex
	slots map[string]*slot[T]
	gen   uint64 // sube con ForgetResults
}

// New construye un grupo con la ventana indicada.
func New[T any](window time.Duration) *Group[T] {
	return &Group[T]{window: window, slots: make(map[string]*slot[T])}
}

// Do programa la evaluación de term para key y espera su resultado.
// Si ctx se cancela, el llamador deja de esperar pero la evaluación continúa para los demás.
func (g *Group[T]) Do(ctx context.Context, key, term string, fn Func[T]) (T, error) {
	ch := make(chan result[T], 1)

	g.mu.Lock()
	s, ok := g.slots[key]
	if !ok {
		s = &slot[T]{}
		g.slots[key] = s
	}

	switch {
	case s.timer != nil && s.term == term:
		s.waiters = append(s.waiters, ch)
	case s.timer == nil && s.running && s.runningTerm == term:
		s.runningWaiters = append(s.runningWaiters, ch)
	case s.timer == nil && !s.running && s.hasLast && s.lastTerm == term &&
		s.lastResult.err == nil && time.Since(s.lastAt) < g.window:
		r := s.lastResult
		g.mu.Unlock()
		return r.val, r.err
	default:
		if s.timer != nil {
			s.timer.Stop()
			for _, w := range s.waiters {
				w <- result[T]{err: ErrSuperseded}
			}
		}
		s.seq++
		seq := s.seq
		s.term = term
		s.fn = fn
		s.ctx = context.WithoutCancel(ctx)
		s.waiters = []chan result[T]{ch}
		s.timer = time.AfterFunc(g.window, func() { g.fire(key, seq) })
	}
	g.mu.Unlock()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (g *Group[T]) fire(key string, seq uint64) {
	g.mu.Lock()
	s, ok := g.slots[key]
	if !ok || s.seq != seq || s.timer == nil {
		g.mu.Unlock()
		return
	}
	term, fn, ctx := s.term, s.fn, s.ctx
	gen := g.gen
	s.timer = nil
	s.running = true
	s.runningTerm = term
	s.runningWaiters = s.waiters
	s.waiters = nil
	g.mu.Unlock()

	val, err := fn(ctx, term)
	r := result[T]{val: val, err: err}

	g.mu.Lock()
	waiters := s.runningWaiters
	s.running = false
	s.runningWaiters = nil
	s.lastAt = time.Now()
	if gen == g.gen {
		s.hasLast = true
		s.lastTerm = term
		s.lastResult = r
	}
	g.mu.Unlock()

	for _, w := range waiters {
		w <- r
	}
	time.AfterFunc(g.window, func() { g.evict(key, s) })
}

// ForgetResults descarta los resultados ya calculados de todas las claves. Las evaluaciones en
// curso entregan su resultado a quienes esperan pero no quedan para reutilizar.
func (g *Group[T]) ForgetResults() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	for _, s := range g.slots {
		s.hasLast = false
		s.lastResult = result[T]{}
	}
}

// evict libera el slot cuando quedó inactivo más allá de la ventana.
func (g *Group[T]) evict(key string, s *slot[T]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if cur, ok := g.slots[key]; !ok || cur != s {
		return
	}
	if s.timer != nil || s.running || time.Since(s.lastAt) < g.window {
		return
	}
	delete(g.slots, key)
}
