package dex_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/game/dex"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, dex.TypesFile), `
types: [normal, fire, grass, ghost]
chart:
  normal: {ghost: 0}
  fire: {grass: 2, fire: 0.5}
`)
	writeFile(t, filepath.Join(dir, dex.SpeciesFile), `
- id: charmander
  name: "Charmander"
  types: [fire]
- id: Odd_Plant
  name: "Odd Plant"
  types: [grass, ghost]
`)
	writeFile(t, filepath.Join(dir, dex.MovesFile), `
- id: ember
  name: "Ember"
  type: fire
  power: 40
- id: tackle
  name: "Tackle"
  type: normal
  power: 35
- id: growl
  name: "Growl"
  type: normal
  power: 0
`)
	return dir
}

func TestLoadDir_ParsesYAML(t *testing.T) {
	d, err := dex.LoadDir(writeFixture(t))
	require.NoError(t, err)

	s, err := d.Species("Odd Plant")
	require.NoError(t, err)
	assert.Equal(t, "odd-plant", s.ID)
	assert.Equal(t, []string{"grass", "ghost"}, s.Types)

	m, err := d.Move("Ember")
	require.NoError(t, err)
	assert.Equal(t, 40, m.Power)
	assert.Equal(t, damage.Special, m.Category())

	m, err = d.Move("tackle")
	require.NoError(t, err)
	assert.Equal(t, damage.Physical, m.Category())

	m, err = d.Move("growl")
	require.NoError(t, err)
	assert.Equal(t, damage.Status, m.Category())

	assert.Equal(t, []string{"normal", "fire", "grass", "ghost"}, d.TypeNames())
	assert.Equal(t, []string{"ember", "growl", "tackle"}, d.MoveIDs())
	assert.Equal(t, []string{"charmander", "odd-plant"}, d.SpeciesIDs())
}

func TestEffectiveness(t *testing.T) {
	d, err := dex.LoadDir(writeFixture(t))
	require.NoError(t, err)

	cases := []struct {
		atk, def string
		want     damage.Ratio
	}{
		{"fire", "grass", damage.SuperEffective},
		{"fire", "fire", damage.Resisted},
		{"normal", "ghost", damage.Immune},
		{"grass", "fire", damage.Neutral},
	}
	for _, tc := range cases {
		got, err := d.Effectiveness(tc.atk, tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.atk, tc.def)
	}

	_, err = d.Effectiveness("sound", "fire")
	assert.ErrorIs(t, err, dex.ErrUnknownType)
	_, err = d.Effectiveness("fire", "sound")
	assert.ErrorIs(t, err, dex.ErrUnknownType)
}

func TestLookupErrors(t *testing.T) {
	d, err := dex.LoadDir(writeFixture(t))
	require.NoError(t, err)

	_, err = d.Species("missingno")
	assert.ErrorIs(t, err, dex.ErrUnknownSpecies)
	_, err = d.Move("splash")
	assert.ErrorIs(t, err, dex.ErrUnknownMove)
	assert.False(t, d.HasType("sound"))
	assert.True(t, d.HasType("Fire"))
}

func TestLoadDir_MissingFile(t *testing.T) {
	_, err := dex.LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestLoadDir_UnknownField(t *testing.T) {
	dir := writeFixture(t)
	writeFile(t, filepath.Join(dir, dex.MovesFile), `
- id: ember
  type: fire
  power: 40
  accuracy: 100
`)
	_, err := dex.LoadDir(dir)
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	types := []string{"normal", "fire"}
	cases := map[string]struct {
		chart   map[string]map[string]float64
		species []*dex.Species
		moves   []*dex.Move
	}{
		"bad multiplier":   {chart: map[string]map[string]float64{"fire": {"normal": 3}}},
		"unknown chart":    {chart: map[string]map[string]float64{"water": {"fire": 2}}},
		"no species types": {species: []*dex.Species{{ID: "blank"}}},
		"species bad type": {species: []*dex.Species{{ID: "x", Types: []string{"water"}}}},
		"duplicate move": {moves: []*dex.Move{
			{ID: "ember", Type: "fire", Power: 40},
			{ID: "Ember", Type: "fire", Power: 40},
		}},
		"move bad type":  {moves: []*dex.Move{{ID: "bubble", Type: "water", Power: 20}}},
		"negative power": {moves: []*dex.Move{{ID: "ember", Type: "fire", Power: -1}}},
	}
	for name, tc := range cases {
		_, err := dex.New(types, tc.chart, tc.species, tc.moves)
		assert.Error(t, err, name)
	}
	_, err := dex.New([]string{"fire", "Fire"}, nil, nil, nil)
	assert.Error(t, err, "duplicate type")
}

// TestLoadDir_Content validates the tables shipped in content/dex.
func TestLoadDir_Content(t *testing.T) {
	d, err := dex.LoadDir(filepath.Join("..", "..", "..", "content", "dex"))
	require.NoError(t, err)

	assert.Len(t, d.TypeNames(), 17)
	r, err := d.Effectiveness("electric", "ground")
	require.NoError(t, err)
	assert.Equal(t, damage.Immune, r)

	s, err := d.Species("swampert")
	require.NoError(t, err)
	assert.Equal(t, []string{"water", "ground"}, s.Types)

	m, err := d.Move("tackle")
	require.NoError(t, err)
	assert.Equal(t, 35, m.Power)
}

func TestPropertyNormalizeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[A-Za-z _-]{0,20}`).Draw(t, "name")
		once := dex.Normalize(s)
		assert.Equal(t, once, dex.Normalize(once))
		assert.NotContains(t, once, " ")
		assert.NotContains(t, once, "_")
	})
}

func TestPropertyCategoryForType(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		typ := rapid.SampledFrom([]string{"fire", "water", "grass", "electric", "psychic", "ice", "dragon", "dark"}).Draw(t, "special_type")
		assert.Equal(t, damage.Special, dex.CategoryForType(typ))
	})
}
