package cache

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// TTLs por categoria de dado. Perfil quase não muda; listagem de
// deals muda a cada webhook.
const (
	TTLShort = 1 * time.Minute
	TTLLong  = 15 * time.Minute
)

type LoaderFunc func(ctx context.Context) (interface{}, error)

// Store é um cache em memória com stale-while-revalidate:
//   - hit fresco: devolve direto
//   - hit velho: devolve o valor velho JÁ e dispara UM refresh em background
//   - miss: bloqueia no loader (single-flight — misses concorrentes esperam)
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	value      interface{}
	err        error
	fetchedAt  time.Time
	ttl        time.Duration
	refreshing bool
	ready      chan struct{} // fechado quando o primeiro load termina
}

func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// GetOrLoad resolve a chave seguindo a política acima.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader LoaderFunc) (interface{}, error) {
	s.mu.Lock()
	e, ok := s.entries[key]

	if !ok {
		// miss: esse caller carrega, os outros esperam no ready
		e = &entry{ttl: ttl, refreshing: true, ready: make(chan struct{})}
		s.entries[key] = e
		s.mu.Unlock()

		value, err := loader(ctx)

		s.mu.Lock()
		e.value = value
		e.err = err
		e.fetchedAt = time.Now()
		e.refreshing = false
		close(e.ready)
		if err != nil {
			// não cacheia erro: o próximo caller tenta de novo
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return value, err
	}

	ready := e.ready
	s.mu.Unlock()

	// outro caller ainda está no primeiro load dessa chave
	select {
	case <-ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	if e.err != nil {
		// o primeiro load falhou: quem esperou junto recebe o mesmo erro
		s.mu.Unlock()
		return nil, e.err
	}
	age := time.Since(e.fetchedAt)
	value := e.value

	if age <= e.ttl {
		s.mu.Unlock()
		return value, nil
	}

	// velho: devolve o que tem e renova em background, um refresh só
	if !e.refreshing {
		e.refreshing = true
		go s.refresh(key, e, loader)
	}
	s.mu.Unlock()
	return value, nil
}

func (s *Store) refresh(key string, e *entry, loader LoaderFunc) {
	// contexto próprio: o request que disparou o refresh já foi embora
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	value, err := loader(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	e.refreshing = false
	if err != nil {
		// mantém o valor velho; melhor dado frio que erro no dashboard
		log.WithError(err).WithField("key", key).Warn("refresh de cache falhou")
		return
	}
	e.value = value
	e.fetchedAt = time.Now()
}

// Invalidate derruba a chave — usado quando um write local torna o
// valor cacheado obviamente errado (ex: sync recém terminado).
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
