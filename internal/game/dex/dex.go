// Package dex holds the static reference tables: species typings, move
// attributes, and the type-effectiveness chart. A Dex is loaded once from
// YAML and is read-only afterwards.
package dex

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// Lookup errors.
var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownMove    = errors.New("unknown move")
	ErrUnknownType    = errors.New("unknown type")
)

// physicalTypes lists the types whose damaging moves use ATK/DEF. Every other
// type uses SPA/SPD.
var physicalTypes = map[string]bool{
	"normal": true, "fighting": true, "flying": true, "poison": true, "ground": true,
	"rock": true, "bug": true, "ghost": true, "steel": true,
}

// Species is a creature's typing.
type Species struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Types []string `yaml:"types"`
}

// Move is a move's static attributes.
type Move struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Power int    `yaml:"power"`
}

// Category returns the move's damage category: Status for zero power,
// otherwise decided by its type.
func (m *Move) Category() damage.Category {
	if m.Power <= 0 {
		return damage.Status
	}
	return CategoryForType(m.Type)
}

// CategoryForType returns the damage category used by damaging moves of type t.
func CategoryForType(t string) damage.Category {
	if physicalTypes[Normalize(t)] {
		return damage.Physical
	}
	return damage.Special
}

// Dex is the immutable set of reference tables.
type Dex struct {
	species map[string]*Species
	moves   map[string]*Move
	types   []string
	known   map[string]bool
	// chart[attacking][defending] is the multiplier; missing entries are neutral.
	chart map[string]map[string]damage.Ratio
}

// Normalize maps a display name or ID to its lookup key: lowercase, with
// spaces and underscores replaced by hyphens.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

// Species returns the species with the given ID or name.
//
// Postcondition: Returns the species, or an error wrapping ErrUnknownSpecies.
func (d *Dex) Species(id string) (*Species, error) {
	s, ok := d.species[Normalize(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, id)
	}
	return s, nil
}

// Move returns the move with the given ID or name.
//
// Postcondition: Returns the move, or an error wrapping ErrUnknownMove.
func (d *Dex) Move(id string) (*Move, error) {
	m, ok := d.moves[Normalize(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMove, id)
	}
	return m, nil
}

// HasType reports whether t is a known type.
func (d *Dex) HasType(t string) bool {
	return d.known[Normalize(t)]
}

// Effectiveness returns the multiplier of an attacking type against one
// defending type.
//
// Postcondition: Returns one of the four effectiveness Ratios, or an error wrapping ErrUnknownType.
func (d *Dex) Effectiveness(attacking, defending string) (damage.Ratio, error) {
	a, def := Normalize(attacking), Normalize(defending)
	if !d.known[a] {
		return damage.Ratio{}, fmt.Errorf("%w: %q", ErrUnknownType, attacking)
	}
	if !d.known[def] {
		return damage.Ratio{}, fmt.Errorf("%w: %q", ErrUnknownType, defending)
	}
	if r, ok := d.chart[a][def]; ok {
		return r, nil
	}
	return damage.Neutral, nil
}

// SpeciesIDs returns all species IDs in sorted order.
func (d *Dex) SpeciesIDs() []string {
	return sortedKeys(d.species)
}

// MoveIDs returns all move IDs in sorted order.
func (d *Dex) MoveIDs() []string {
	return sortedKeys(d.moves)
}

// TypeNames returns the type names in the order they were declared.
func (d *Dex) TypeNames() []string {
	out := make([]string, len(d.types))
	copy(out, d.types)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
