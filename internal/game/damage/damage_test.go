package damage_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/testutil"
)

func simplified() damage.BattleContext {
	return damage.BattleContext{
		Level:    8,
		Power:    50,
		MoveType: "normal",
		Category: damage.Physical,
		Defense:  20,
	}
}

func TestStatStage(t *testing.T) {
	cases := []struct {
		stage int
		want  int
	}{
		{-6, 25}, {-5, 28}, {-4, 33}, {-3, 40}, {-2, 50}, {-1, 66},
		{0, 100}, {1, 150}, {2, 200}, {3, 250}, {4, 300}, {5, 350}, {6, 400},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, damage.StatStage(100, tc.stage), "stage %d", tc.stage)
	}
}

// TestDamage_Simplified checks the forward model against the hand-written
// simplified formula: floor(floor(floor(8*2/5+2)*50*x/20)/50+2).
func TestDamage_Simplified(t *testing.T) {
	ctx := simplified()
	for stat := 1; stat <= 600; stat++ {
		dmg100 := (8*2/5+2)*50*stat/20/50 + 2
		for roll := range damage.Rolls {
			assert.Equal(t, dmg100*(roll+85)/100, damage.Damage(stat, roll, ctx), "stat %d roll %d", stat, roll)
		}
	}
}

func TestDamage_KnownValues(t *testing.T) {
	// Level 50, 80 power, 200 attack into 100 defense: base 70, +2 = 72.
	ctx := damage.BattleContext{Level: 50, Power: 80, MoveType: "normal", Category: damage.Physical, Defense: 100}
	assert.Equal(t, 72, damage.PreRoll(200, ctx))
	assert.Equal(t, 61, damage.Damage(200, 0, ctx))
	assert.Equal(t, 72, damage.Damage(200, 15, ctx))

	ctx.STAB = true
	assert.Equal(t, 108, damage.PreRoll(200, ctx))
	ctx.Primary = damage.SuperEffective
	ctx.Secondary = damage.Resisted
	assert.Equal(t, 108, damage.PreRoll(200, ctx))
}

func TestDamage_BurnHalvesPhysicalInsideBracket(t *testing.T) {
	ctx := damage.BattleContext{Level: 50, Power: 80, MoveType: "normal", Category: damage.Physical, Defense: 100}
	burned := ctx
	burned.Burned = true

	assert.Equal(t, 37, damage.PreRoll(200, burned), "burn halves 70 to 35 before the +2")
	for roll := range damage.Rolls {
		assert.Less(t, damage.Damage(200, roll, burned), damage.Damage(200, roll, ctx), "roll %d", roll)
	}
}

func TestDamage_BurnIgnoredForSpecial(t *testing.T) {
	ctx := damage.BattleContext{Level: 50, Power: 80, MoveType: "fire", Category: damage.Special, Defense: 100}
	burned := ctx
	burned.Burned = true
	assert.Equal(t, damage.PreRoll(200, ctx), damage.PreRoll(200, burned))
}

func TestDamage_ScreenSkippedOnCritical(t *testing.T) {
	ctx := damage.BattleContext{Level: 50, Power: 80, MoveType: "normal", Category: damage.Physical, Defense: 100, Screen: true}
	assert.Equal(t, 37, damage.PreRoll(200, ctx))

	ctx.Critical = true
	assert.Equal(t, 144, damage.PreRoll(200, ctx), "screen is ignored and the result doubled")
}

func TestDamage_FlashFireOnlyBoostsFire(t *testing.T) {
	fire := damage.BattleContext{Level: 50, Power: 80, MoveType: "fire", Category: damage.Special, Defense: 100, FlashFire: true}
	assert.Equal(t, 107, damage.PreRoll(200, fire))

	water := fire
	water.MoveType = "water"
	assert.Equal(t, 72, damage.PreRoll(200, water))
}

func TestDamage_WeatherOrderAfterFlashFire(t *testing.T) {
	ctx := damage.BattleContext{Level: 50, Power: 80, MoveType: "fire", Category: damage.Special, Defense: 100,
		FlashFire: true, Weather: damage.WeatherBoost}
	// 70 -> 105 -> 157, +2
	assert.Equal(t, 159, damage.PreRoll(200, ctx))
	ctx.Weather = damage.WeatherReduce
	// 70 -> 105 -> 52, +2
	assert.Equal(t, 54, damage.PreRoll(200, ctx))
}

func TestDamage_ThickFatAndSport(t *testing.T) {
	ctx := damage.BattleContext{Level: 50, Power: 80, MoveType: "ice", Category: damage.Special, Defense: 100, ThickFat: true}
	assert.Equal(t, 100, ctx.EffectiveOffense(200))
	ctx.MoveType = "water"
	assert.Equal(t, 200, ctx.EffectiveOffense(200))

	ctx = damage.BattleContext{Level: 50, Power: 80, MoveType: "electric", Category: damage.Special, Defense: 100, Sport: damage.SportMud}
	assert.Equal(t, 100, ctx.EffectiveOffense(200))
	ctx.Sport = damage.SportWater
	assert.Equal(t, 200, ctx.EffectiveOffense(200))
	ctx.MoveType = "fire"
	ctx.ThickFat = true
	assert.Equal(t, 50, ctx.EffectiveOffense(200))
}

func TestEffectiveDefense(t *testing.T) {
	ctx := damage.BattleContext{Defense: 100, DefenseBadge: true}
	assert.Equal(t, 110, ctx.EffectiveDefense())

	ctx.DefenseStage = 2
	assert.Equal(t, 220, ctx.EffectiveDefense())

	ctx = damage.BattleContext{Defense: 1, DefenseStage: -6}
	assert.Equal(t, 1, ctx.EffectiveDefense(), "effective defense never drops below 1")
}

func TestDamage_ImmuneIsZero(t *testing.T) {
	ctx := simplified()
	ctx.Primary = damage.Immune
	for roll := range damage.Rolls {
		assert.Equal(t, 0, damage.Damage(300, roll, ctx))
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, simplified().Validate())

	mutations := map[string]func(*damage.BattleContext){
		"level zero":       func(c *damage.BattleContext) { c.Level = 0 },
		"level too high":   func(c *damage.BattleContext) { c.Level = 101 },
		"zero power":       func(c *damage.BattleContext) { c.Power = 0 },
		"power too high":   func(c *damage.BattleContext) { c.Power = damage.MaxPower + 1 },
		"defense too high": func(c *damage.BattleContext) { c.Defense = damage.MaxDefense + 1 },
		"status move":      func(c *damage.BattleContext) { c.Category = damage.Status },
		"zero defense":     func(c *damage.BattleContext) { c.Defense = 0 },
		"defense stage":    func(c *damage.BattleContext) { c.DefenseStage = 7 },
		"offense stage":    func(c *damage.BattleContext) { c.OffenseStage = -7 },
		"bad primary":      func(c *damage.BattleContext) { c.Primary = damage.Ratio{Num: 3, Den: 1} },
		"bad secondary":    func(c *damage.BattleContext) { c.Secondary = damage.Ratio{Num: 1, Den: 4} },
		"unknown category": func(c *damage.BattleContext) { c.Category = damage.Category(9) },
	}
	for name, mutate := range mutations {
		ctx := simplified()
		mutate(&ctx)
		err := ctx.Validate()
		assert.ErrorIs(t, err, damage.ErrInvalidInput, name)
	}
}

func TestEffectivenessFromFloat(t *testing.T) {
	for f, want := range map[float64]damage.Ratio{0: damage.Immune, 0.5: damage.Resisted, 1: damage.Neutral, 2: damage.SuperEffective} {
		got, err := damage.EffectivenessFromFloat(f)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := damage.EffectivenessFromFloat(4)
	assert.Error(t, err)
}

func TestParseEnums(t *testing.T) {
	w, err := damage.ParseWeather("Increases")
	require.NoError(t, err)
	assert.Equal(t, damage.WeatherBoost, w)
	_, err = damage.ParseWeather("hail")
	assert.Error(t, err)

	s, err := damage.ParseSport("mud")
	require.NoError(t, err)
	assert.Equal(t, damage.SportMud, s)

	c, err := damage.ParseCategory("Special")
	require.NoError(t, err)
	assert.Equal(t, damage.Special, c)
	assert.Equal(t, "special", c.String())
}

func TestPropertyDamageMonotonicInStat(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := testutil.DrawBattleContext(t)
		stat := rapid.IntRange(1, 599).Draw(t, "stat")
		step := rapid.IntRange(1, 600-stat).Draw(t, "step")
		roll := rapid.IntRange(0, damage.Rolls-1).Draw(t, "roll")
		lo := damage.Damage(stat, roll, ctx)
		hi := damage.Damage(stat+step, roll, ctx)
		if hi < lo {
			t.Fatalf("damage decreased from %d to %d between stat %d and %d", lo, hi, stat, stat+step)
		}
	})
}

func TestPropertyDamageMonotonicInRoll(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := testutil.DrawBattleContext(t)
		stat := rapid.IntRange(1, 600).Draw(t, "stat")
		spread := damage.Spread(stat, ctx)
		for roll := 1; roll < damage.Rolls; roll++ {
			if spread[roll] < spread[roll-1] {
				t.Fatalf("roll %d dealt %d < roll %d dealt %d", roll, spread[roll], roll-1, spread[roll-1])
			}
		}
		assert.Equal(t, damage.PreRoll(stat, ctx), spread[damage.Rolls-1], "the top roll is x1.00")
	})
}

// TestPropertyCriticalNeutralisesUnfavourableStages verifies that a critical
// hit treats a positive defense stage and a negative offense stage as 0.
func TestPropertyCriticalNeutralisesUnfavourableStages(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := testutil.DrawBattleContext(t)
		ctx.Critical = true
		ctx.DefenseStage = rapid.IntRange(1, damage.MaxStage).Draw(t, "def_stage_pos")
		ctx.OffenseStage = rapid.IntRange(damage.MinStage, -1).Draw(t, "off_stage_neg")
		neutral := ctx
		neutral.DefenseStage = 0
		neutral.OffenseStage = 0
		stat := rapid.IntRange(1, 600).Draw(t, "stat")
		assert.Equal(t, damage.Spread(stat, neutral), damage.Spread(stat, ctx))
	})
}

func TestValidate_RejectsOverflowingInputs(t *testing.T) {
	cases := []struct {
		name    string
		power   int
		defense int
	}{
		{"power 2^62", 1 << 62, 20},
		{"max int power", math.MaxInt, 20},
		{"max int defense", 50, math.MaxInt},
		{"negative power", math.MinInt, 20},
		{"both huge", 1 << 40, 1 << 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := simplified()
			ctx.Level = 5
			ctx.Power = tc.power
			ctx.Defense = tc.defense
			assert.ErrorIs(t, ctx.Validate(), damage.ErrInvalidInput)
		})
	}
}

// TestPropertyDamageAtCeilingsStaysNonNegative checks that the largest
// accepted inputs never wrap an intermediate product.
func TestPropertyDamageAtCeilingsStaysNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := testutil.DrawBattleContext(t)
		ctx.Power = rapid.IntRange(1, damage.MaxPower).Draw(t, "power")
		ctx.Defense = rapid.IntRange(1, damage.MaxDefense).Draw(t, "defense")
		require.NoError(t, ctx.Validate())
		stat := rapid.IntRange(1, damage.MaxStat).Draw(t, "stat")
		for _, d := range damage.Spread(stat, ctx) {
			if d < 0 {
				t.Fatalf("negative damage %d for stat %d", d, stat)
			}
		}
	})
}
