// Package damage implements the Generation III integer damage formula used to
// evaluate a single hit: every multiplication by a modifier is followed by a
// floor, and every modifier is an exact rational.
package damage

import (
	"fmt"
	"strings"
)

// Ratio is an exact rational multiplier. Apply floors the product so that
// results match the game's integer arithmetic bit for bit.
//
// Invariant: Den > 0 and Num >= 0 for every Ratio used by the formula.
type Ratio struct {
	Num int
	Den int
}

// Common modifier constants.
var (
	Unit     = Ratio{Num: 1, Den: 1}
	Half     = Ratio{Num: 1, Den: 2}
	Double   = Ratio{Num: 2, Den: 1}
	OneHalf  = Ratio{Num: 3, Den: 2}
	BadgeAdj = Ratio{Num: 11, Den: 10}
)

// Type-effectiveness multipliers.
var (
	Immune         = Ratio{Num: 0, Den: 1}
	Resisted       = Half
	Neutral        = Unit
	SuperEffective = Double
)

// Apply returns floor(x * Num / Den).
//
// Precondition: x >= 0 and r.Den > 0.
func (r Ratio) Apply(x int) int {
	return x * r.Num / r.Den
}

// IsUnit reports whether r leaves every value unchanged.
func (r Ratio) IsUnit() bool {
	return r.Num == r.Den
}

// String renders r as a decimal-ish multiplier, e.g. "x1.5".
func (r Ratio) String() string {
	if r.Den == 0 {
		return "x?"
	}
	if r.Num%r.Den == 0 {
		return fmt.Sprintf("x%d", r.Num/r.Den)
	}
	return fmt.Sprintf("x%g", float64(r.Num)/float64(r.Den))
}

// orNeutral maps the zero Ratio to Neutral so an unset effectiveness field
// behaves as a x1 multiplier.
func (r Ratio) orNeutral() Ratio {
	if r.Num == 0 && r.Den == 0 {
		return Neutral
	}
	return r
}

// EffectivenessFromFloat converts a type-chart multiplier to its exact Ratio.
//
// Postcondition: Returns one of Immune, Resisted, Neutral, SuperEffective, or an error.
func EffectivenessFromFloat(f float64) (Ratio, error) {
	switch f {
	case 0:
		return Immune, nil
	case 0.5:
		return Resisted, nil
	case 1:
		return Neutral, nil
	case 2:
		return SuperEffective, nil
	}
	return Ratio{}, fmt.Errorf("effectiveness must be one of [0, 0.5, 1, 2], got %g", f)
}

func validEffectiveness(r Ratio) bool {
	switch r {
	case Immune, Resisted, Neutral, SuperEffective:
		return true
	}
	return false
}

// Category is the damage category of a move.
type Category int

const (
	Physical Category = iota
	Special
	Status
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case Physical:
		return "physical"
	case Special:
		return "special"
	case Status:
		return "status"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory converts a category name to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return Physical, nil
	case "special":
		return Special, nil
	case "status":
		return Status, nil
	}
	return 0, fmt.Errorf("unknown move category %q", s)
}

// Weather is the effect of the current weather on the move being used.
type Weather int

const (
	WeatherNeutral Weather = iota
	// WeatherBoost is sun on a Fire move or rain on a Water move.
	WeatherBoost
	// WeatherReduce is rain on a Fire move or sun on a Water move.
	WeatherReduce
)

// String implements fmt.Stringer.
func (w Weather) String() string {
	switch w {
	case WeatherNeutral:
		return "neutral"
	case WeatherBoost:
		return "increases"
	case WeatherReduce:
		return "decreases"
	}
	return fmt.Sprintf("weather(%d)", int(w))
}

// ParseWeather accepts "neutral", "increases"/"boost", or "decreases"/"reduce".
func ParseWeather(s string) (Weather, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neutral", "none":
		return WeatherNeutral, nil
	case "increases", "boost":
		return WeatherBoost, nil
	case "decreases", "reduce":
		return WeatherReduce, nil
	}
	return 0, fmt.Errorf("unknown weather %q (want neutral, increases or decreases)", s)
}

func (w Weather) modifier() Ratio {
	switch w {
	case WeatherBoost:
		return OneHalf
	case WeatherReduce:
		return Half
	}
	return Unit
}

// Sport is an active Mud Sport or Water Sport field effect.
type Sport int

const (
	SportNone Sport = iota
	// SportMud halves Electric moves.
	SportMud
	// SportWater halves Fire moves.
	SportWater
)

// String implements fmt.Stringer.
func (s Sport) String() string {
	switch s {
	case SportNone:
		return "none"
	case SportMud:
		return "mud"
	case SportWater:
		return "water"
	}
	return fmt.Sprintf("sport(%d)", int(s))
}

// ParseSport accepts "none", "mud" or "water".
func ParseSport(s string) (Sport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SportNone, nil
	case "mud":
		return SportMud, nil
	case "water":
		return SportWater, nil
	}
	return 0, fmt.Errorf("unknown sport %q (want none, mud or water)", s)
}

// Type names referenced by the formula.
const (
	TypeFire     = "fire"
	TypeWater    = "water"
	TypeElectric = "electric"
	TypeIce      = "ice"
)
