// Package inference recovers the set of offensive stat values consistent with
// one observed damage value. Estimate inverts the damage formula into a
// conservative interval; Verify brute-forces that interval against all 16
// rolls and trims it to the true support.
package inference

import (
	"fmt"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// Candidate stat domain. Every legal stat lies inside it.
const (
	StatMin = 1
	StatMax = 600
)

// MaxObserved is the largest observed damage accepted.
const MaxObserved = 100000

// Bounds is an inclusive stat interval. Min > Max denotes the empty interval.
type Bounds struct {
	Min int
	Max int
}

var emptyBounds = Bounds{Min: StatMin, Max: StatMin - 1}

// Empty reports whether b contains no value.
func (b Bounds) Empty() bool {
	return b.Min > b.Max
}

// Len returns the number of integers in b.
func (b Bounds) Len() int {
	if b.Empty() {
		return 0
	}
	return b.Max - b.Min + 1
}

// Contains reports whether stat lies in b.
func (b Bounds) Contains(stat int) bool {
	return stat >= b.Min && stat <= b.Max
}

// String implements fmt.Stringer.
func (b Bounds) String() string {
	if b.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d, %d]", b.Min, b.Max)
}

// Estimate inverts the damage formula for observed, ignoring the random roll,
// and returns an interval that contains every stat Verify could accept.
//
// The modifier chain is walked in reverse. Lower bounds are rounded down and
// upper bounds rounded up with one extra unit per non-unit step, so rounding
// lost by a forward floor is never lost again on the way back.
//
// Precondition: none; invalid input is reported as an error.
// Postcondition: Returns bounds within [StatMin, StatMax] (possibly empty), or
// an error wrapping damage.ErrInvalidInput.
func Estimate(observed int, c damage.BattleContext) (Bounds, error) {
	if observed < 1 || observed > MaxObserved {
		return Bounds{}, fmt.Errorf("%w: observed damage must be 1-%d, got %d", damage.ErrInvalidInput, MaxObserved, observed)
	}
	if err := c.Validate(); err != nil {
		return Bounds{}, err
	}

	outside := c.OutsideModifiers()
	for _, m := range outside {
		if m.Num == 0 {
			// An immune hit always deals 0.
			return emptyBounds, nil
		}
	}

	b := unroll(observed)
	b = unapplyAll(b, outside)

	b.Min -= 2
	b.Max -= 2
	if b.Min < 0 {
		b.Min = 0
	}
	if b.Max < 0 {
		return emptyBounds, nil
	}

	b = unapplyAll(b, c.InsideModifiers())
	b = unapply(b, c.BaseScale())
	b = statStageBackwards(b, c.EffectiveOffenseStage())
	b = unapplyAll(b, c.OffenseModifiers())

	b.Min--
	b.Max++
	return clamp(b), nil
}

// unroll reverses the random roll: the pre-roll value r satisfies
// observed <= r <= ceil(observed/0.85)+1.
func unroll(observed int) Bounds {
	return Bounds{
		Min: observed,
		Max: ceilDiv(observed*100, damage.MinRollPercent) + 1,
	}
}

// unapplyAll reverses mods, which were applied forward in slice order.
func unapplyAll(b Bounds, mods []damage.Ratio) Bounds {
	for i := len(mods) - 1; i >= 0; i-- {
		b = unapply(b, mods[i])
	}
	return b
}

// unapply reverses y = floor(x*Num/Den) for y in b.
//
// Precondition: r.Num > 0; b.Min >= 0.
// Postcondition: the result contains every x whose image lies in b.
func unapply(b Bounds, r damage.Ratio) Bounds {
	if r.IsUnit() {
		return b
	}
	return Bounds{
		Min: b.Min * r.Den / r.Num,
		Max: ceilDiv((b.Max+1)*r.Den, r.Num),
	}
}

// statStageBackwards reverses damage.StatStage. A negative stage rounds both
// bounds up and widens the upper bound by ceil(|stage|/2) to cover the
// stage's own truncation; a non-negative stage rounds down without widening.
func statStageBackwards(b Bounds, stage int) Bounds {
	if stage < 0 {
		return Bounds{
			Min: ceilDiv(b.Min*(2-stage), 2),
			Max: ceilDiv(b.Max*(2-stage), 2) + ceilDiv(-stage, 2),
		}
	}
	return Bounds{
		Min: b.Min * 2 / (2 + stage),
		Max: b.Max * 2 / (2 + stage),
	}
}

func clamp(b Bounds) Bounds {
	if b.Min < StatMin {
		b.Min = StatMin
	}
	if b.Max > StatMax {
		b.Max = StatMax
	}
	if b.Empty() {
		return emptyBounds
	}
	return b
}

// ceilDiv returns ceil(a/b) for a >= 0, b > 0.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
