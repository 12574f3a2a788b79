package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config stores KeyedLimiter settings.
type Config struct {
	RPS        float64       // requests per second per key
	Burst      int           // bucket capacity
	TTL        time.Duration // drop limiters idle for longer (0 keeps them)
	MaxClients int           // cap on tracked keys, new keys are denied past it (0 is unlimited)
}

// KeyedLimiter keeps one rate.Limiter per client key.
type KeyedLimiter struct {
	cfg         Config
	clock       Clock
	mu          sync.Mutex
	clients     map[string]*client
	lastCleanup time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter creates a limiter with the given config and clock.
func NewKeyedLimiter(clock Clock, cfg Config) *KeyedLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxClients < 0 {
		cfg.MaxClients = 0
	}
	return &KeyedLimiter{
		cfg:     cfg,
		clock:   clock,
		clients: make(map[string]*client),
	}
}

// Allow reports whether key may make a request now.
func (l *KeyedLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	l.cleanupLocked(now)
	c, ok := l.clients[key]
	if !ok {
		if l.cfg.MaxClients > 0 && len(l.clients) >= l.cfg.MaxClients {
			l.mu.Unlock()
			return false
		}
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *KeyedLimiter) cleanupLocked(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	interval := time.Minute
	if half := l.cfg.TTL / 2; half > interval {
		interval = half
	}
	if !l.lastCleanup.IsZero() && now.Sub(l.lastCleanup) < interval {
		return
	}
	l.lastCleanup = now

	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.TTL {
			delete(l.clients, k)
		}
	}
}
