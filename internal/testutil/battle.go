package testutil

import (
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

var (
	drawTypes = []string{"normal", "fire", "water", "electric", "ice", "grass", "rock"}
	drawEffs  = []damage.Ratio{damage.Resisted, damage.Neutral, damage.SuperEffective}
)

// DrawBattleContext draws a valid BattleContext whose effectiveness
// multipliers are never Immune.
//
// Postcondition: the returned context passes Validate.
func DrawBattleContext(t *rapid.T) damage.BattleContext {
	return damage.BattleContext{
		Level:        rapid.IntRange(1, 100).Draw(t, "level"),
		Power:        rapid.IntRange(1, 250).Draw(t, "power"),
		MoveType:     rapid.SampledFrom(drawTypes).Draw(t, "move_type"),
		Category:     rapid.SampledFrom([]damage.Category{damage.Physical, damage.Special}).Draw(t, "category"),
		Defense:      rapid.IntRange(1, 500).Draw(t, "defense"),
		DefenseStage: rapid.IntRange(damage.MinStage, damage.MaxStage).Draw(t, "defense_stage"),
		DefenseBadge: rapid.Bool().Draw(t, "defense_badge"),
		OffenseStage: rapid.IntRange(damage.MinStage, damage.MaxStage).Draw(t, "offense_stage"),
		STAB:         rapid.Bool().Draw(t, "stab"),
		Critical:     rapid.Bool().Draw(t, "critical"),
		DoubleDamage: rapid.Bool().Draw(t, "double_damage"),
		Burned:       rapid.Bool().Draw(t, "burned"),
		Screen:       rapid.Bool().Draw(t, "screen"),
		Weather:      rapid.SampledFrom([]damage.Weather{damage.WeatherNeutral, damage.WeatherBoost, damage.WeatherReduce}).Draw(t, "weather"),
		FlashFire:    rapid.Bool().Draw(t, "flash_fire"),
		Sport:        rapid.SampledFrom([]damage.Sport{damage.SportNone, damage.SportMud, damage.SportWater}).Draw(t, "sport"),
		ThickFat:     rapid.Bool().Draw(t, "thick_fat"),
		Primary:      rapid.SampledFrom(drawEffs).Draw(t, "primary"),
		Secondary:    rapid.SampledFrom(drawEffs).Draw(t, "secondary"),
	}
}
