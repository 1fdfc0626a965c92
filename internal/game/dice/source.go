package dice

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// randSource serialises a math/rand/v2 generator so it satisfies Source's
// concurrency requirement.
type randSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// Intn returns a uniform int in [0, n). It panics if n <= 0.
func (s *randSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewCryptoSource returns a Source backed by a ChaCha8 stream keyed from
// crypto/rand. It is what the server uses.
func NewCryptoSource() Source {
	var key [32]byte
	if _, err := crand.Read(key[:]); err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return &randSource{r: rand.New(rand.NewChaCha8(key))}
}

// NewSeededSource returns a deterministic Source. Sources built from the
// same seed produce the same rolls, which lets a sample be replayed.
func NewSeededSource(seed uint64) Source {
	return &randSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
