package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShareTokenStore asocia el jti de cada share token con el codigo de
// resultado que habilita. Consume lee y borra en un solo paso: un token
// sirve para un unico envio.
type ShareTokenStore interface {
	Store(jti, code string, ttl time.Duration) error
	Lookup(jti string) (code string, ok bool, err error)
	Consume(jti string) (code string, ok bool, err error)
}

type shareGrant struct {
	code    string
	expires time.Time
}

type memoryShareTokenStore struct {
	mu        sync.Mutex
	grants    map[string]shareGrant
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryShareTokenStore se usa cuando no hay redis; los grants se pierden
// al reiniciar.
func NewMemoryShareTokenStore() ShareTokenStore {
	return &memoryShareTokenStore{
		grants: make(map[string]shareGrant),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *memoryShareTokenStore) Store(jti, code string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" || ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= time.Minute {
		for id, g := range s.grants {
			if !now.Before(g.expires) {
				delete(s.grants, id)
			}
		}
		s.lastSweep = now
	}
	s.grants[jti] = shareGrant{code: code, expires: now.Add(ttl)}
	return nil
}

func (s *memoryShareTokenStore) Lookup(jti string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.live(jti)
	return g.code, ok, nil
}

func (s *memoryShareTokenStore) Consume(jti string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.live(jti)
	if ok {
		delete(s.grants, jti)
	}
	return g.code, ok, nil
}

// live requiere s.mu tomado.
func (s *memoryShareTokenStore) live(jti string) (shareGrant, bool) {
	g, ok := s.grants[jti]
	if !ok {
		return shareGrant{}, false
	}
	if !s.now().Before(g.expires) {
		delete(s.grants, jti)
		return shareGrant{}, false
	}
	return g, true
}

type redisShareTokenStore struct {
	client redisKVClient
	prefix string
}

// NewRedisShareTokenStore guarda cada grant como cmi:share:<jti> -> codigo,
// con el TTL del token.
func NewRedisShareTokenStore(client *redis.Client) ShareTokenStore {
	if client == nil {
		return nil
	}
	return &redisShareTokenStore{
		client: client,
		prefix: "cmi:share:",
	}
}

func (s *redisShareTokenStore) Store(jti, code string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" || ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+jti, code, ttl).Err()
}

func (s *redisShareTokenStore) Lookup(jti string) (string, bool, error) {
	if strings.TrimSpace(jti) == "" {
		return "", false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return grantFromCmd(s.client.Get(ctx, s.prefix+jti))
}

// Consume usa GETDEL para que dos envios concurrentes no puedan usar el
// mismo token.
func (s *redisShareTokenStore) Consume(jti string) (string, bool, error) {
	if strings.TrimSpace(jti) == "" {
		return "", false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return grantFromCmd(s.client.GetDel(ctx, s.prefix+jti))
}

func grantFromCmd(cmd *redis.StringCmd) (string, bool, error) {
	code, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}
