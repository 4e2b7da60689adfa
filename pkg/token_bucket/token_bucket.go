// Package token_bucket - ограничитель частоты запросов с отдельной корзиной
// токенов на каждый ключ (IP клиента).
package token_bucket

import (
	"sync"
	"time"
)

const defaultIdleTTL = 10 * time.Minute

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

type Limiter struct {
	capacity   float64
	refillRate float64
	idleTTL    time.Duration
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type Option func(*Limiter)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithIdleTTL задает, через сколько простоя корзина ключа удаляется.
func WithIdleTTL(ttl time.Duration) Option {
	return func(l *Limiter) {
		l.idleTTL = ttl
	}
}

// New создает ограничитель: каждый ключ получает capacity токенов и
// refillRate токенов в секунду сверху.
func New(capacity int, refillRate float64, opts ...Option) *Limiter {
	l := &Limiter{
		capacity:   float64(capacity),
		refillRate: refillRate,
		idleTTL:    defaultIdleTTL,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()

	return l
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastSeen).Seconds()
	if elapsed > 0 {
		b.tokens = min(l.capacity, b.tokens+elapsed*l.refillRate)
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len - число отслеживаемых ключей.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
