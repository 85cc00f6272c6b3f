// Package cache guarda listas de referencia y resúmenes con carga compartida en vuelo
// (singleflight) e invalidación explícita tras cada alta/edición/baja.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrMiss el store no tiene la clave (o expiró).
var ErrMiss = errors.New("cache: miss")

// Store almacén de bytes con TTL (memoria o Redis).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// LoadFunc obtiene el valor desde el backend.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Entry valor cacheado bajo una clave fija. Varias lecturas simultáneas sin valor en caché
// comparten una única carga. Invalidate garantiza que la siguiente lectura vaya a la red:
// una carga iniciada antes de la invalidación no vuelve a poblar el store.
type Entry[T any] struct {
	store Store
	key   string
	ttl   time.Duration

	sf  singleflight.Group
	mu  sync.Mutex
	gen uint64
}

// NewEntry construye la entrada.
func NewEntry[T any](store Store, key string, ttl time.Duration) *Entry[T] {
	return &Entry[T]{store: store, key: key, ttl: ttl}
}

// Get devuelve el valor cacheado o lo carga con load.
// La carga se ejecuta con context.WithoutCancel: si el llamador que la inició se cancela,
// los demás que esperan la misma carga siguen recibiendo el resultado.
func (e *Entry[T]) Get(ctx context.Context, load LoadFunc[T]) (T, error) {
	var zero T
	if raw, err := e.store.Get(ctx, e.key); err == nil {
		var v T
		if uerr := json.Unmarshal(raw, &v); uerr == nil {
			return v, nil
		}
	}

	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	flightKey := fmt.Sprintf("%s#%d", e.key, gen)
	ch := e.sf.DoChan(flightKey, func() (any, error) {
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		stale := e.gen != gen
		e.mu.Unlock()
		if !stale {
			if raw, merr := json.Marshal(v); merr == nil {
				_ = e.store.Set(context.WithoutCancel(ctx), e.key, raw, e.ttl)
			}
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Invalidate descarta el valor; la siguiente lectura carga desde la red.
func (e *Entry[T]) Invalidate(ctx context.Context) error {
	e.mu.Lock()
	e.gen++
	e.mu.Unlock()
	return e.store.Delete(ctx, e.key)
}

// ── Store en memoria ──────────────────────────────────────────────────────────

type memItem struct {
	val       []byte
	expiresAt time.Time
}

// MemoryStore Store de proceso; se usa cuando no hay Redis configurado.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
	now   func() time.Time
}

// NewMemoryStore construye el store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if !it.expiresAt.IsZero() && m.now().After(it.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, ErrMiss
	}
	return it.val, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	it := memItem{val: val}
	if ttl > 0 {
		it.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}
