// Package scenario turns caller-supplied inputs into a canonical
// damage.BattleContext, resolving move and defender identities against the dex.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/game/dex"
)

// Resolution errors. ErrMissingInput and ErrStatusMove wrap damage.ErrInvalidInput;
// ErrNoDex means a name lookup was requested without reference tables.
var (
	ErrMissingInput = fmt.Errorf("%w: missing input", damage.ErrInvalidInput)
	ErrStatusMove   = fmt.Errorf("%w: status move", damage.ErrInvalidInput)
	ErrNoDex        = errors.New("reference tables are not loaded")
)

// MoveSource identifies the move either by name or by manual attributes.
type MoveSource interface {
	resolve(d *dex.Dex) (power int, typ string, cat damage.Category, err error)
}

// ByName looks the move up in the dex.
type ByName struct {
	ID string
}

func (m ByName) resolve(d *dex.Dex) (int, string, damage.Category, error) {
	if d == nil {
		return 0, "", 0, ErrNoDex
	}
	mv, err := d.Move(m.ID)
	if err != nil {
		return 0, "", 0, err
	}
	return mv.Power, mv.Type, mv.Category(), nil
}

// Manual supplies the move's attributes directly. An empty Category is
// derived from Type; an empty Type is typeless physical. With a dex, Type
// must name a known type.
type Manual struct {
	Power    int
	Type     string
	Category string
}

func (m Manual) resolve(d *dex.Dex) (int, string, damage.Category, error) {
	typ := dex.Normalize(m.Type)
	if typ != "" && d != nil && !d.HasType(typ) {
		return 0, "", 0, fmt.Errorf("%w: %q", dex.ErrUnknownType, m.Type)
	}
	if m.Category != "" {
		cat, err := damage.ParseCategory(m.Category)
		if err != nil {
			return 0, "", 0, fmt.Errorf("%w: %v", damage.ErrInvalidInput, err)
		}
		return m.Power, typ, cat, nil
	}
	if typ == "" {
		return m.Power, typ, damage.Physical, nil
	}
	return m.Power, typ, dex.CategoryForType(typ), nil
}

// DefenderSource identifies the defender's typing. A nil DefenderSource is a
// typeless defender that takes neutral damage.
type DefenderSource interface {
	types(d *dex.Dex) ([]string, error)
}

// BySpecies uses a species' typing.
type BySpecies struct {
	ID string
}

func (s BySpecies) types(d *dex.Dex) ([]string, error) {
	if d == nil {
		return nil, ErrNoDex
	}
	sp, err := d.Species(s.ID)
	if err != nil {
		return nil, err
	}
	return sp.Types, nil
}

// ByTypes lists the defender's types, primary first.
type ByTypes struct {
	Types []string
}

func (t ByTypes) types(_ *dex.Dex) ([]string, error) {
	if len(t.Types) > 2 {
		return nil, fmt.Errorf("%w: at most 2 defender types, got %d", damage.ErrInvalidInput, len(t.Types))
	}
	return t.Types, nil
}

// Scenario is the raw input for one inference. Required numbers are pointers
// so that an unset field is distinguishable from zero.
type Scenario struct {
	Observed *int
	Level    *int
	Defense  *int
	Move     MoveSource
	Defender DefenderSource
	// Attacker, when set, grants STAB if the move shares one of its types.
	Attacker string

	DefenseStage int
	OffenseStage int
	DefenseBadge bool
	STAB         bool
	Critical     bool
	DoubleDamage bool
	Burned       bool
	Screen       bool
	FlashFire    bool
	ThickFat     bool
	Weather      damage.Weather
	Sport        damage.Sport
}

// Resolved is a validated inference request.
type Resolved struct {
	Observed int
	Battle   damage.BattleContext
}

// Simplified builds the typeless, modifier-free scenario: a physical hit of
// the given power into the given defense.
func Simplified(observed, level, power, defense int) Scenario {
	return Scenario{
		Observed: &observed,
		Level:    &level,
		Defense:  &defense,
		Move:     Manual{Power: power},
	}
}

// Resolve checks for missing inputs, looks up identities in d, and builds the
// BattleContext. d may be nil when no lookup is needed.
//
// Postcondition: Returns a Resolved whose Battle passes Validate, or an error
// wrapping damage.ErrInvalidInput or a dex lookup error.
func (s Scenario) Resolve(d *dex.Dex) (Resolved, error) {
	var missing []string
	if s.Observed == nil {
		missing = append(missing, "damage")
	}
	if s.Level == nil {
		missing = append(missing, "level")
	}
	if s.Defense == nil {
		missing = append(missing, "defense")
	}
	if s.Move == nil {
		missing = append(missing, "move")
	}
	if len(missing) > 0 {
		return Resolved{}, fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}

	power, moveType, cat, err := s.Move.resolve(d)
	if err != nil {
		return Resolved{}, fmt.Errorf("resolving move: %w", err)
	}
	if cat == damage.Status {
		return Resolved{}, ErrStatusMove
	}
	if power < 1 {
		return Resolved{}, fmt.Errorf("%w: move power", ErrMissingInput)
	}

	c := damage.BattleContext{
		Level:        *s.Level,
		Power:        power,
		MoveType:     moveType,
		Category:     cat,
		Defense:      *s.Defense,
		DefenseStage: s.DefenseStage,
		DefenseBadge: s.DefenseBadge,
		OffenseStage: s.OffenseStage,
		STAB:         s.STAB,
		Critical:     s.Critical,
		DoubleDamage: s.DoubleDamage,
		Burned:       s.Burned,
		Screen:       s.Screen,
		Weather:      s.Weather,
		FlashFire:    s.FlashFire,
		Sport:        s.Sport,
		ThickFat:     s.ThickFat,
	}

	if s.Attacker != "" && !c.STAB {
		if c.STAB, err = sharesType(d, s.Attacker, moveType); err != nil {
			return Resolved{}, fmt.Errorf("resolving attacker: %w", err)
		}
	}

	if s.Defender != nil {
		types, err := s.Defender.types(d)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolving defender: %w", err)
		}
		if c.Primary, c.Secondary, err = effectiveness(d, moveType, types); err != nil {
			return Resolved{}, fmt.Errorf("resolving effectiveness: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return Resolved{}, err
	}
	return Resolved{Observed: *s.Observed, Battle: c}, nil
}

func sharesType(d *dex.Dex, attacker, moveType string) (bool, error) {
	sp, err := BySpecies{ID: attacker}.types(d)
	if err != nil {
		return false, err
	}
	for _, t := range sp {
		if t == moveType {
			return true, nil
		}
	}
	return false, nil
}

// effectiveness returns the multipliers against the defender's primary and
// secondary type. A typeless move, or a missing secondary type, is neutral.
func effectiveness(d *dex.Dex, moveType string, types []string) (damage.Ratio, damage.Ratio, error) {
	primary, secondary := damage.Neutral, damage.Neutral
	if moveType == "" || len(types) == 0 {
		return primary, secondary, nil
	}
	if d == nil {
		return primary, secondary, ErrNoDex
	}
	var err error
	if primary, err = d.Effectiveness(moveType, types[0]); err != nil {
		return primary, secondary, err
	}
	if len(types) == 2 && dex.Normalize(types[1]) != dex.Normalize(types[0]) {
		if secondary, err = d.Effectiveness(moveType, types[1]); err != nil {
			return primary, secondary, err
		}
	}
	return primary, secondary, nil
}
