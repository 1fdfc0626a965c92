package damage

// Roll constants. The game draws one of Rolls equally likely percentages
// starting at MinRollPercent.
const (
	Rolls          = 16
	MinRollPercent = 85
)

// StatStage applies a stat stage to x:
// floor(x * (2 + max(stage, 0)) / (2 - min(stage, 0))).
//
// Precondition: x >= 0; stage in [MinStage, MaxStage].
func StatStage(x, stage int) int {
	return StageRatio(stage).Apply(x)
}

// StageRatio returns the multiplier for a stat stage.
func StageRatio(stage int) Ratio {
	if stage >= 0 {
		return Ratio{Num: 2 + stage, Den: 2}
	}
	return Ratio{Num: 2, Den: 2 - stage}
}

// BaseScale returns the multiplier that maps the effective offensive stat to
// the base damage: floor(2L/5+2) * power / (defense * 50).
func (c BattleContext) BaseScale() Ratio {
	return Ratio{Num: c.LevelFactor() * c.Power, Den: c.EffectiveDefense() * 50}
}

// Base returns the base damage for an effective offensive stat, before any
// inside-bracket modifier or the +2.
func (c BattleContext) Base(offense int) int {
	return c.BaseScale().Apply(offense)
}

// PreRoll returns the damage for stat before the random roll is applied.
//
// Precondition: stat >= 0; c passes Validate.
// Postcondition: Returns >= 0.
func PreRoll(stat int, c BattleContext) int {
	dmg := c.Base(c.EffectiveOffense(stat))
	for _, m := range c.InsideModifiers() {
		dmg = m.Apply(dmg)
	}
	dmg += 2
	for _, m := range c.OutsideModifiers() {
		dmg = m.Apply(dmg)
	}
	return dmg
}

// ApplyRoll returns floor(dmg * (85 + roll) / 100).
//
// Precondition: roll in [0, Rolls).
func ApplyRoll(dmg, roll int) int {
	return dmg * (MinRollPercent + roll) / 100
}

// Damage returns the damage dealt by a hit with the given offensive stat and
// random roll index.
//
// Precondition: stat >= 1; roll in [0, Rolls); c passes Validate.
// Postcondition: Returns >= 0; non-decreasing in stat for fixed roll and c.
func Damage(stat, roll int, c BattleContext) int {
	return ApplyRoll(PreRoll(stat, c), roll)
}

// Spread returns the damage for every roll index in ascending roll order.
func Spread(stat int, c BattleContext) [Rolls]int {
	var out [Rolls]int
	pre := PreRoll(stat, c)
	for roll := range Rolls {
		out[roll] = ApplyRoll(pre, roll)
	}
	return out
}
