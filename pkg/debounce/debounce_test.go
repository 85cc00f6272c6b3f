package debounce_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/pkg/debounce"
)

const testWindow = 40 * time.Millisecond

func countingFilter(calls *int32, seen *sync.Map) debounce.Func[string] {
	return func(_ context.Context, term string) (string, error) {
		atomic.AddInt32(calls, 1)
		seen.Store(term, true)
		return "resultado:" + term, nil
	}
}

func TestGroup_MismoTerminoDentroDeVentana_UnaEvaluacion(t *testing.T) {
	g := debounce.New[string](testWindow)
	var calls int32
	var seen sync.Map
	fn := countingFilter(&calls, &seen)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := g.Do(context.Background(), "sesion-1", "ram", fn)
			require.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "el mismo término solo se evalúa una vez")
	assert.Equal(t, []string{"resultado:ram", "resultado:ram"}, results)
}

func TestGroup_RepetirUltimoTermino_UsaResultadoPrevio(t *testing.T) {
	g := debounce.New[string](testWindow)
	var calls int32
	var seen sync.Map
	fn := countingFilter(&calls, &seen)

	_, err := g.Do(context.Background(), "sesion-1", "ram", fn)
	require.NoError(t, err)
	r, err := g.Do(context.Background(), "sesion-1", "ram", fn)
	require.NoError(t, err)

	assert.Equal(t, "resultado:ram", r)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGroup_ForgetResults_ReevaluaElUltimoTermino(t *testing.T) {
	g := debounce.New[string](time.Second)
	var calls int32
	var seen sync.Map
	fn := countingFilter(&calls, &seen)

	_, err := g.Do(context.Background(), "sesion-1", "ram", fn)
	require.NoError(t, err)
	g.ForgetResults()
	_, err = g.Do(context.Background(), "sesion-1", "ram", fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "sin resultado previo se vuelve a evaluar")
}

func TestGroup_TerminoNuevo_ReemplazaAlPendiente(t *testing.T) {
	g := debounce.New[string](testWindow)
	var calls int32
	var seen sync.Map
	fn := countingFilter(&calls, &seen)

	firstErr := make(chan error, 1)
	go func() {
		_, err := g.Do(context.Background(), "sesion-1", "ra", fn)
		firstErr <- err
	}()
	time.Sleep(10 * time.Millisecond)

	r, err := g.Do(context.Background(), "sesion-1", "ram", fn)
	require.NoError(t, err)
	assert.Equal(t, "resultado:ram", r)
	assert.ErrorIs(t, <-firstErr, debounce.ErrSuperseded)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	_, evaluatedOld := seen.Load("ra")
	assert.False(t, evaluatedOld, "el término reemplazado no se evalúa")
}

func TestGroup_ClavesIndependientes(t *testing.T) {
	g := debounce.New[string](testWindow)
	var calls int32
	var seen sync.Map
	fn := countingFilter(&calls, &seen)

	var wg sync.WaitGroup
	for _, key := range []string{"sesion-1", "sesion-2"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err := g.Do(context.Background(), key, "ram", fn)
			assert.NoError(t, err)
		}(key)
	}
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGroup_ContextoCancelado(t *testing.T) {
	g := debounce.New[string](testWindow)
	var calls int32
	var seen sync.Map

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Do(ctx, "sesion-1", "ram", countingFilter(&calls, &seen))
	assert.ErrorIs(t, err, context.Canceled)
}
