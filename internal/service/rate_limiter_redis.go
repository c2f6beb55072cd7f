package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ventana fija por email: devuelve {submits en la ventana, ms restantes}. Si
// la clave quedo sin TTL (EXPIRE perdido) se lo vuelve a poner para que el
// email no quede bloqueado para siempre.
const redisSubmitWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`

type redisRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int) SubmitRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "cmi:submit:rl:",
	}
}

// Allow es fail-open: si redis no responde se deja pasar el submit. Al
// rechazar devuelve el TTL de la ventana como espera.
func (l *redisRateLimiter) Allow(key string) (bool, time.Duration) {
	if l == nil || l.client == nil {
		return true, 0
	}
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return false, l.window
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	windowMs := l.window.Milliseconds()
	if windowMs <= 0 {
		windowMs = time.Minute.Milliseconds()
	}
	reply, err := l.client.Eval(ctx, redisSubmitWindowScript, []string{l.prefix + normalized}, windowMs).Int64Slice()
	if err != nil || len(reply) != 2 {
		return true, 0
	}
	if reply[0] <= int64(l.max) {
		return true, 0
	}
	return false, time.Duration(reply[1]) * time.Millisecond
}
