package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countingLoader(calls *int32, value interface{}, err error) LoaderFunc {
	return func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(calls, 1)
		return value, err
	}
}

func TestGetOrLoad(t *testing.T) {
	t.Run("miss carrega uma vez, hit fresco nao recarrega", func(t *testing.T) {
		s := New()
		var calls int32
		loader := countingLoader(&calls, "dados", nil)

		v1, err := s.GetOrLoad(context.Background(), "k", time.Minute, loader)
		assert.NoError(t, err)
		assert.Equal(t, "dados", v1)

		v2, err := s.GetOrLoad(context.Background(), "k", time.Minute, loader)
		assert.NoError(t, err)
		assert.Equal(t, "dados", v2)

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("erro de load nao fica cacheado", func(t *testing.T) {
		s := New()
		var calls int32

		_, err := s.GetOrLoad(context.Background(), "k", time.Minute,
			countingLoader(&calls, nil, errors.New("banco fora")))
		assert.Error(t, err)

		// próximo caller tenta de novo e consegue
		v, err := s.GetOrLoad(context.Background(), "k", time.Minute,
			countingLoader(&calls, "ok", nil))
		assert.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("quem espera um primeiro load que falha recebe o erro, nao nil", func(t *testing.T) {
		s := New()
		var calls int32
		slowFail := func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(20 * time.Millisecond)
			return nil, errors.New("banco fora")
		}

		errs := make(chan error, 2)
		go func() {
			_, err := s.GetOrLoad(context.Background(), "k", time.Minute, slowFail)
			errs <- err
		}()
		time.Sleep(5 * time.Millisecond) // segundo caller entra DURANTE o load
		go func() {
			_, err := s.GetOrLoad(context.Background(), "k", time.Minute, slowFail)
			errs <- err
		}()

		assert.Error(t, <-errs)
		assert.Error(t, <-errs)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "single-flight vale também na falha")
	})

	t.Run("hit velho devolve o valor antigo na hora e renova por tras", func(t *testing.T) {
		s := New()
		var calls int32

		_, err := s.GetOrLoad(context.Background(), "k", time.Nanosecond,
			countingLoader(&calls, "v1", nil))
		assert.NoError(t, err)

		time.Sleep(5 * time.Millisecond) // garante que expirou

		// resposta imediata com o valor velho
		v, err := s.GetOrLoad(context.Background(), "k", time.Nanosecond,
			countingLoader(&calls, "v2", nil))
		assert.NoError(t, err)
		assert.Equal(t, "v1", v)

		// o refresh em background eventualmente troca o valor
		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&calls) == 2
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("misses concorrentes fazem um load so", func(t *testing.T) {
		s := New()
		var calls int32
		slowLoader := func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(20 * time.Millisecond)
			return "devagar", nil
		}

		var wg sync.WaitGroup
		results := make([]interface{}, 10)
		for i := 0; i < 10; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := s.GetOrLoad(context.Background(), "k", time.Minute, slowLoader)
				assert.NoError(t, err)
				results[i] = v
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "single-flight: um load pra N callers")
		for _, v := range results {
			assert.Equal(t, "devagar", v)
		}
	})

	t.Run("invalidate forca reload no proximo acesso", func(t *testing.T) {
		s := New()
		var calls int32

		s.GetOrLoad(context.Background(), "k", time.Minute, countingLoader(&calls, "v1", nil))
		s.Invalidate("k")

		v, err := s.GetOrLoad(context.Background(), "k", time.Minute, countingLoader(&calls, "v2", nil))
		assert.NoError(t, err)
		assert.Equal(t, "v2", v)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}
