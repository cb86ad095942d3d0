package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
)

const draftKeyPrefix = "ipv:draft:"

var _ appipv.DraftStore = (*DraftStore)(nil)

// DraftStore implementa ipv.DraftStore sobre Redis. Cada borrador expira a los ttl
// de su última escritura.
type DraftStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewDraftStore construye el store. ttl <= 0 guarda sin expiración.
func NewDraftStore(client goredis.Cmdable, ttl time.Duration) *DraftStore {
	if ttl < 0 {
		ttl = 0
	}
	return &DraftStore{client: client, ttl: ttl}
}

// DraftKey clave del borrador de una sesión.
func DraftKey(sessionID string) string { return draftKeyPrefix + sessionID }

// Save serializa el borrador como JSON.
func (s *DraftStore) Save(ctx context.Context, sessionID string, d *appipv.Draft) error {
	if d == nil {
		return s.Delete(ctx, sessionID)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("redis: serializar borrador: %w", err)
	}
	if err := s.client.Set(ctx, DraftKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar borrador: %w", err)
	}
	return nil
}

// Load devuelve (nil, nil) si la sesión no tiene borrador.
func (s *DraftStore) Load(ctx context.Context, sessionID string) (*appipv.Draft, error) {
	raw, err := s.client.Get(ctx, DraftKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer borrador: %w", err)
	}
	var d appipv.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("redis: borrador corrupto: %w", err)
	}
	return &d, nil
}

// Delete borra el borrador; no existir no es un error.
func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, DraftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis: borrar borrador: %w", err)
	}
	return nil
}
