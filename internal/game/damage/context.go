package damage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks a BattleContext or request that cannot be evaluated.
var ErrInvalidInput = errors.New("invalid input")

// Stage bounds.
const (
	MinStage = -6
	MaxStage = 6
)

// Input ceilings. They sit well above any in-game value and keep every
// intermediate product of the formula inside an int.
const (
	MaxPower   = 1000
	MaxDefense = 9999
	MaxStat    = 9999
)

// BattleContext carries every input needed to evaluate the damage formula for
// one hit. It is a value type; nothing mutates it after construction.
type BattleContext struct {
	// Level is the attacker's level.
	Level int
	// Power is the move's base power.
	Power int
	// MoveType is the lowercase move type name, e.g. "fire".
	MoveType string
	// Category selects the physical or special stat pair.
	Category Category

	// Defense is the defender's DEF or SPD stat before badge and stage.
	Defense int
	// DefenseStage is the defender's DEF/SPD stage.
	DefenseStage int
	// DefenseBadge applies the x1.1 badge boost to Defense.
	DefenseBadge bool
	// OffenseStage is the attacker's ATK/SPA stage.
	OffenseStage int

	STAB         bool
	Critical     bool
	DoubleDamage bool
	Burned       bool
	// Screen is Reflect for physical hits or Light Screen for special hits.
	Screen    bool
	Weather   Weather
	FlashFire bool
	Sport     Sport
	ThickFat  bool

	// Primary and Secondary are the effectiveness of the move against the
	// defender's first and second type. The zero Ratio means neutral.
	Primary   Ratio
	Secondary Ratio
}

// Validate checks the BattleContext invariants.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidInput describing all violations.
func (c BattleContext) Validate() error {
	var errs []string
	if c.Level < 1 || c.Level > 100 {
		errs = append(errs, fmt.Sprintf("level must be 1-100, got %d", c.Level))
	}
	if c.Power < 1 || c.Power > MaxPower {
		errs = append(errs, fmt.Sprintf("power must be 1-%d, got %d", MaxPower, c.Power))
	}
	if c.Category == Status {
		errs = append(errs, "status moves deal no damage")
	} else if c.Category != Physical && c.Category != Special {
		errs = append(errs, fmt.Sprintf("unknown category %d", int(c.Category)))
	}
	if c.Defense < 1 || c.Defense > MaxDefense {
		errs = append(errs, fmt.Sprintf("defense must be 1-%d, got %d", MaxDefense, c.Defense))
	}
	if c.DefenseStage < MinStage || c.DefenseStage > MaxStage {
		errs = append(errs, fmt.Sprintf("defense stage must be %d..%d, got %d", MinStage, MaxStage, c.DefenseStage))
	}
	if c.OffenseStage < MinStage || c.OffenseStage > MaxStage {
		errs = append(errs, fmt.Sprintf("offense stage must be %d..%d, got %d", MinStage, MaxStage, c.OffenseStage))
	}
	if !validEffectiveness(c.Primary.orNeutral()) {
		errs = append(errs, fmt.Sprintf("primary effectiveness must be 0, 0.5, 1 or 2, got %d/%d", c.Primary.Num, c.Primary.Den))
	}
	if !validEffectiveness(c.Secondary.orNeutral()) {
		errs = append(errs, fmt.Sprintf("secondary effectiveness must be 0, 0.5, 1 or 2, got %d/%d", c.Secondary.Num, c.Secondary.Den))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

// LevelFactor returns floor(2*level/5) + 2.
func (c BattleContext) LevelFactor() int {
	return 2*c.Level/5 + 2
}

// EffectiveOffenseStage returns the offense stage used by the formula. A
// critical hit ignores a negative offense stage.
func (c BattleContext) EffectiveOffenseStage() int {
	if c.Critical && c.OffenseStage < 0 {
		return 0
	}
	return c.OffenseStage
}

// EffectiveDefenseStage returns the defense stage used by the formula. A
// critical hit ignores a positive defense stage.
func (c BattleContext) EffectiveDefenseStage() int {
	if c.Critical && c.DefenseStage > 0 {
		return 0
	}
	return c.DefenseStage
}

// EffectiveDefense applies the badge boost and the defense stage.
//
// Postcondition: Returns >= 1.
func (c BattleContext) EffectiveDefense() int {
	def := c.Defense
	if c.DefenseBadge {
		def = BadgeAdj.Apply(def)
	}
	def = StatStage(def, c.EffectiveDefenseStage())
	if def < 1 {
		return 1
	}
	return def
}

// OffenseModifiers returns the multipliers applied to the raw offensive stat
// before the stage, in application order.
func (c BattleContext) OffenseModifiers() []Ratio {
	var mods []Ratio
	if (c.Sport == SportMud && c.MoveType == TypeElectric) ||
		(c.Sport == SportWater && c.MoveType == TypeFire) {
		mods = append(mods, Half)
	}
	if c.ThickFat && (c.MoveType == TypeFire || c.MoveType == TypeIce) {
		mods = append(mods, Half)
	}
	return mods
}

// EffectiveOffense applies the offense modifiers and the offense stage to stat.
//
// Precondition: stat >= 0.
func (c BattleContext) EffectiveOffense(stat int) int {
	for _, m := range c.OffenseModifiers() {
		stat = m.Apply(stat)
	}
	return StatStage(stat, c.EffectiveOffenseStage())
}

// InsideModifiers returns the multipliers applied to the base damage before
// the +2, in application order: flash fire, weather, screen, burn.
func (c BattleContext) InsideModifiers() []Ratio {
	var mods []Ratio
	if c.FlashFire && c.MoveType == TypeFire {
		mods = append(mods, OneHalf)
	}
	if w := c.Weather.modifier(); !w.IsUnit() {
		mods = append(mods, w)
	}
	if c.Screen && !c.Critical {
		mods = append(mods, Half)
	}
	if c.Burned && c.Category == Physical {
		mods = append(mods, Half)
	}
	return mods
}

// OutsideModifiers returns the multipliers applied after the +2, in
// application order: critical, double damage, STAB, primary and secondary
// type effectiveness.
func (c BattleContext) OutsideModifiers() []Ratio {
	var mods []Ratio
	if c.Critical {
		mods = append(mods, Double)
	}
	if c.DoubleDamage {
		mods = append(mods, Double)
	}
	if c.STAB {
		mods = append(mods, OneHalf)
	}
	if p := c.Primary.orNeutral(); !p.IsUnit() {
		mods = append(mods, p)
	}
	if s := c.Secondary.orNeutral(); !s.IsUnit() {
		mods = append(mods, s)
	}
	return mods
}
