package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	count      int64
	ttlMs      int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal([]interface{}{m.count, m.ttlMs})
	return cmd
}

func TestMemoryRateLimiterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryRateLimiter(time.Minute, 2).(*memoryRateLimiter)
	l.now = func() time.Time { return now }

	ok1, _ := l.Allow("a@example.com")
	now = now.Add(10 * time.Second)
	ok2, _ := l.Allow("a@example.com")
	if !ok1 || !ok2 {
		t.Fatalf("expected first two hits allowed")
	}
	now = now.Add(5 * time.Second)
	ok, wait := l.Allow("a@example.com")
	if ok {
		t.Fatalf("expected third hit in window to be denied")
	}
	// el hit mas viejo sale de la ventana en 60s - 15s
	if wait != 45*time.Second {
		t.Fatalf("expected retry after 45s, got %v", wait)
	}
	if ok, _ := l.Allow("b@example.com"); !ok {
		t.Fatalf("expected independent keys")
	}

	now = now.Add(46 * time.Second)
	if ok, wait := l.Allow("a@example.com"); !ok || wait != 0 {
		t.Fatalf("expected allow after window slides, ok=%v wait=%v", ok, wait)
	}
}

func TestMemoryRateLimiterForgetsIdleKeys(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryRateLimiter(time.Minute, 3).(*memoryRateLimiter)
	l.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		l.Allow(fmt.Sprintf("user%d@example.com", i))
	}
	if len(l.hits) != 1000 {
		t.Fatalf("expected 1000 tracked keys, got %d", len(l.hits))
	}

	now = now.Add(2 * time.Minute)
	l.Allow("fresh@example.com")
	if len(l.hits) != 1 {
		t.Fatalf("expected idle keys dropped once the window passed, got %d", len(l.hits))
	}
	if _, ok := l.hits["fresh@example.com"]; !ok {
		t.Fatalf("expected current key to be tracked")
	}
}

func TestMemoryRateLimiterDefaults(t *testing.T) {
	l := NewMemoryRateLimiter(0, 0).(*memoryRateLimiter)
	if l.window != time.Minute || l.max != 1 {
		t.Fatalf("unexpected defaults window=%v max=%d", l.window, l.max)
	}
}

func TestRateLimitErrorWrapsSentinel(t *testing.T) {
	var err error = &RateLimitError{RetryAfter: 30 * time.Second}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected errors.Is ErrRateLimited")
	}
	var rl *RateLimitError
	if !errors.As(err, &rl) || rl.RetryAfter != 30*time.Second {
		t.Fatalf("expected errors.As to expose retry after")
	}
}

func TestRedisRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisRateLimiter
		if ok, _ := l.Allow("user@example.com"); !ok {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := &redisRateLimiter{
			client: &mockRedisEvaler{count: 1},
			window: time.Minute,
			max:    3,
			prefix: "cmi:submit:rl:",
		}
		if ok, _ := l.Allow("   "); ok {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{count: 3, ttlMs: 1000}
		l := &redisRateLimiter{
			client: mock,
			window: 10 * time.Minute,
			max:    3,
			prefix: "cmi:submit:rl:",
		}
		ok, wait := l.Allow(" User@Example.com ")
		if !ok || wait != 0 {
			t.Fatalf("expected allow when count <= max, ok=%v wait=%v", ok, wait)
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "cmi:submit:rl:user@example.com" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != int64(600000) {
			t.Fatalf("expected window ms=600000, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisSubmitWindowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny returns remaining window", func(t *testing.T) {
		l := &redisRateLimiter{
			client: &mockRedisEvaler{count: 4, ttlMs: 42500},
			window: time.Minute,
			max:    3,
			prefix: "cmi:submit:rl:",
		}
		ok, wait := l.Allow("user@example.com")
		if ok {
			t.Fatalf("expected deny when count > max")
		}
		if wait != 42500*time.Millisecond {
			t.Fatalf("expected retry after 42.5s, got %v", wait)
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisRateLimiter{
			client: &mockRedisEvaler{err: errors.New("connection refused")},
			window: time.Minute,
			max:    3,
			prefix: "cmi:submit:rl:",
		}
		if ok, _ := l.Allow("user@example.com"); !ok {
			t.Fatalf("expected fail-open on redis error")
		}
	})
}
