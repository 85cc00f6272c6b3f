// Package alerts mantiene el feed de alertas activas. Se alimenta por push (consumidor Kafka)
// y, como respaldo, por polling del backend cuando el último dato es más viejo que el intervalo.
package alerts

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// DefaultMax tamaño del feed si no se configura.
const DefaultMax = 200

// Feed conjunto deduplicado por Alert.Key, de más reciente a más antigua y acotado.
type Feed struct {
	repo     repository.AlertRepository
	interval time.Duration
	max      int
	log      *logger.Logger
	now      func() time.Time

	mu       sync.RWMutex
	items    map[string]entity.Alert
	polled   map[string]struct{} // claves cuya última fuente fue el polling
	lastPoll time.Time
	lastPush time.Time

	polls singleflight.Group
}

// Option personaliza el feed.
type Option func(*Feed)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(f *Feed) { f.now = now }
}

// NewFeed construye el feed. repo puede ser nil si no hay polling.
func NewFeed(repo repository.AlertRepository, pollInterval time.Duration, max int, log *logger.Logger, opts ...Option) *Feed {
	if max <= 0 {
		max = DefaultMax
	}
	if log == nil {
		log = logger.Nop()
	}
	f := &Feed{
		repo:     repo,
		interval: pollInterval,
		max:      max,
		log:      log,
		now:      time.Now,
		items:    make(map[string]entity.Alert),
		polled:   make(map[string]struct{}),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Merge incorpora alertas. Ante la misma clave se queda la de CreatedAt más reciente.
// Devuelve cuántas claves nuevas entraron.
func (f *Feed) Merge(alerts ...entity.Alert) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mergeLocked(alerts)
}

// Push igual que Merge pero registra el instante del último push recibido.
func (f *Feed) Push(alerts ...entity.Alert) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPush = f.now()
	for _, a := range alerts {
		delete(f.polled, a.Key())
	}
	return f.mergeLocked(alerts)
}

func (f *Feed) mergeLocked(alerts []entity.Alert) int {
	added := 0
	for _, a := range alerts {
		k := a.Key()
		cur, ok := f.items[k]
		if !ok {
			added++
		}
		if !ok || !a.CreatedAt.Before(cur.CreatedAt) {
			f.items[k] = a
		}
	}
	if len(f.items) > f.max {
		for _, a := range f.sortedLocked()[f.max:] {
			delete(f.items, a.Key())
			delete(f.polled, a.Key())
		}
	}
	return added
}

// Dismiss retira una alerta del feed.
func (f *Feed) Dismiss(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[key]; !ok {
		return false
	}
	delete(f.items, key)
	delete(f.polled, key)
	return true
}

// List devuelve el feed; antes hace polling si ni push ni polling trajeron datos dentro del intervalo.
// Un fallo de polling se registra y se devuelve lo que haya en memoria.
func (f *Feed) List(ctx context.Context) []entity.Alert {
	if f.stale() {
		if err := f.Poll(ctx); err != nil {
			f.log.Warn().Err(err).Msg("alerts: polling de respaldo fallido")
		}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sortedLocked()
}

// Poll consulta las alertas activas; llamadas concurrentes comparten una sola petición, que no
// se cancela si se cancela quien la inició. El resultado reemplaza lo traído por el polling
// anterior: una alerta que el backend ya no lista sale del feed. Lo llegado por push se conserva.
func (f *Feed) Poll(ctx context.Context) error {
	if f.repo == nil {
		return nil
	}
	loadCtx := context.WithoutCancel(ctx)
	_, err, _ := f.polls.Do("poll", func() (any, error) {
		alerts, err := f.repo.ListActive(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("alerts: listar activas: %w", err)
		}
		f.mu.Lock()
		f.lastPoll = f.now()
		removed := f.replacePolledLocked(alerts)
		n := f.mergeLocked(alerts)
		for _, a := range alerts {
			if _, ok := f.items[a.Key()]; ok {
				f.polled[a.Key()] = struct{}{}
			}
		}
		f.mu.Unlock()
		f.log.Debug().Int("received", len(alerts)).Int("new", n).Int("resolved", removed).Msg("alerts: polling")
		return nil, nil
	})
	return err
}

// replacePolledLocked retira las alertas del polling anterior que ya no vienen en alerts.
func (f *Feed) replacePolledLocked(alerts []entity.Alert) int {
	current := make(map[string]struct{}, len(alerts))
	for _, a := range alerts {
		current[a.Key()] = struct{}{}
	}
	removed := 0
	for k := range f.polled {
		if _, ok := current[k]; !ok {
			delete(f.items, k)
			removed++
		}
	}
	f.polled = make(map[string]struct{}, len(alerts))
	return removed
}

func (f *Feed) stale() bool {
	if f.repo == nil || f.interval <= 0 {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	last := f.lastPoll
	if f.lastPush.After(last) {
		last = f.lastPush
	}
	return f.now().Sub(last) >= f.interval
}

// sortedLocked más reciente primero; a igual fecha, por clave para un orden estable.
func (f *Feed) sortedLocked() []entity.Alert {
	out := make([]entity.Alert, 0, len(f.items))
	for _, a := range f.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}
