package bot

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
)

// Source is the randomness stochastic bots draw from. Float64 returns a
// value in [0, 1).
type Source interface {
	Float64() float64
}

// lockedRand lets several bots share one seeded generator.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// NewSource returns a seeded source. The same seed replays the same
// sequence of draws.
func NewSource(seed uint64) Source {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a seed from crypto/rand for runs that should not repeat.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
