package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucketState struct {
	tokens float64
	ts     time.Time
}

// MemoryBucket is the per-process token bucket used when redis is absent.
type MemoryBucket struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time
}

func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{
		buckets: make(map[string]*bucketState),
		now:     time.Now,
	}
}

func (m *MemoryBucket) Allow(_ context.Context, key string, rate float64, burst int) (Result, error) {
	if err := validate(key, rate, burst); err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.prune(now, bucketTTL(rate, burst))

	state, ok := m.buckets[key]
	if !ok {
		state = &bucketState{tokens: float64(burst), ts: now}
		m.buckets[key] = state
	} else {
		delta := now.Sub(state.ts).Seconds()
		if delta < 0 {
			delta = 0
		}
		state.tokens = math.Min(float64(burst), state.tokens+delta*rate)
		state.ts = now
	}

	allowed := false
	if state.tokens >= 1 {
		allowed = true
		state.tokens--
	}
	return decide(allowed, state.tokens, rate, burst), nil
}

func (m *MemoryBucket) prune(now time.Time, ttl time.Duration) {
	for key, state := range m.buckets {
		if now.Sub(state.ts) > ttl {
			delete(m.buckets, key)
		}
	}
}
