// Package dice provides the randomness abstraction used to simulate hits, so
// a caller can produce an observation for a known stat and infer it back.
package dice

import (
	"fmt"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// Sample is the audit trail for one simulated hit.
//
// Postcondition: Damage == damage.Damage(Stat, Roll, ctx) for the context it was drawn with.
type Sample struct {
	Stat   int // attacker's offensive stat
	Roll   int // roll index in [0, damage.Rolls)
	Damage int // resulting damage
}

// Percent returns the roll as the percentage applied to the pre-roll damage.
func (s Sample) Percent() int {
	return damage.MinRollPercent + s.Roll
}

// String returns a human-readable audit string in the format:
//
//	"stat 20 @ 92% → 7"
func (s Sample) String() string {
	return fmt.Sprintf("stat %d @ %d%% → %d", s.Stat, s.Percent(), s.Damage)
}

// Source is the randomness provider for roll selection.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
