package adaptive

import (
	mathrand "math/rand"
	"sync"
	"time"
)

// Rand is the randomness source threaded through the composer and every
// builder. Production uses a process-wide locked instance; tests inject a
// fixed-seed one for deterministic sessions.
type Rand interface {
	IntN(n int) int
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

type lockedRand struct {
	mu  sync.Mutex
	src *mathrand.Rand
}

// NewRand returns a mutex-guarded Rand seeded with the given value.
func NewRand(seed int64) Rand {
	return &lockedRand{src: mathrand.New(mathrand.NewSource(seed))}
}

var (
	defaultRandOnce sync.Once
	defaultRandInst Rand
)

// DefaultRand returns the shared production randomness source.
func DefaultRand() Rand {
	defaultRandOnce.Do(func() {
		defaultRandInst = NewRand(time.Now().UnixNano())
	})
	return defaultRandInst
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

func (r *lockedRand) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Perm(n)
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src.Shuffle(n, swap)
}

// sample draws up to n items without replacement, preserving no order.
func sample[T any](rnd Rand, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	picked := make([]T, 0, n)
	for _, idx := range rnd.Perm(len(items))[:n] {
		picked = append(picked, items[idx])
	}
	return picked
}

// shuffleInPlace randomizes the order of items.
func shuffleInPlace[T any](rnd Rand, items []T) {
	rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// choose picks a single random element. The slice must be non-empty.
func choose[T any](rnd Rand, items []T) T {
	return items[rnd.IntN(len(items))]
}
