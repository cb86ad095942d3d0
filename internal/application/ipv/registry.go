package ipv

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
)

// Registry mantiene las sesiones IPV abiertas (una por pestaña del navegador).
// Una sesión inactiva más de ttl se descarta en Sweep; si hay borrador se puede retomar.
type Registry struct {
	backend Backend
	drafts  DraftStore
	ttl     time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// NewRegistry construye el registro de sesiones.
func NewRegistry(backend Backend, drafts DraftStore, ttl time.Duration, log zerolog.Logger) *Registry {
	if drafts == nil {
		drafts = NopDraftStore{}
	}
	return &Registry{
		backend:  backend,
		drafts:   drafts,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: map[string]*entry{},
	}
}

// WithClock reemplaza el reloj (tests).
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Create abre una sesión nueva.
func (r *Registry) Create() *Store {
	id := uuid.New().String()
	s := NewStore(id, r.backend, r.drafts, r.log)

	r.mu.Lock()
	r.sessions[id] = &entry{store: s, lastSeen: r.now()}
	r.mu.Unlock()

	r.log.Info().Str("session", id).Msg("sesión IPV creada")
	return s
}

// Get devuelve la sesión; si no está en memoria intenta retomarla desde su borrador.
func (r *Registry) Get(ctx context.Context, id string) (*Store, error) {
	r.mu.Lock()
	if e, ok := r.sessions[id]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.store, nil
	}
	r.mu.Unlock()

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	d, err := r.drafts.Load(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("session", id).Msg("no se pudo leer el borrador")
		return nil, domain.ErrSessionNotFound
	}
	if d == nil {
		return nil, domain.ErrSessionNotFound
	}

	// id puede apuntar a un buffer reutilizado por el servidor HTTP; la clave del mapa necesita su propia copia
	id = strings.Clone(id)
	s := NewStore(id, r.backend, r.drafts, r.log)
	s.Restore(d)

	r.mu.Lock()
	defer r.mu.Unlock()
	// otra petición pudo retomarla mientras leíamos
	if e, ok := r.sessions[id]; ok {
		e.lastSeen = r.now()
		return e.store, nil
	}
	r.sessions[id] = &entry{store: s, lastSeen: r.now()}
	r.log.Info().Str("session", id).Str("fecha", d.Fecha).Msg("sesión IPV retomada desde borrador")
	return s, nil
}

// Delete descarta la sesión y su borrador.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if err := r.drafts.Delete(ctx, id); err != nil {
		r.log.Warn().Err(err).Str("session", id).Msg("no se pudo borrar el borrador")
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Sweep descarta de memoria las sesiones inactivas. Devuelve cuántas se quitaron.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.log.Info().Int("sesiones", n).Msg("sesiones IPV expiradas")
	}
	return n
}

// Len cuenta las sesiones en memoria.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
