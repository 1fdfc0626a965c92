package dex

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// File names read by LoadDir.
const (
	SpeciesFile = "species.yaml"
	MovesFile   = "moves.yaml"
	TypesFile   = "types.yaml"
)

// typeFile is the on-disk layout of TypesFile.
type typeFile struct {
	Types []string                      `yaml:"types"`
	Chart map[string]map[string]float64 `yaml:"chart"`
}

// LoadDir reads SpeciesFile, MovesFile and TypesFile from dir and builds a Dex.
//
// Precondition: dir must be a readable directory containing all three files.
// Postcondition: Returns a validated Dex, or an error naming the offending file.
func LoadDir(dir string) (*Dex, error) {
	var tf typeFile
	if err := decodeFile(filepath.Join(dir, TypesFile), &tf); err != nil {
		return nil, err
	}
	var species []*Species
	if err := decodeFile(filepath.Join(dir, SpeciesFile), &species); err != nil {
		return nil, err
	}
	var moves []*Move
	if err := decodeFile(filepath.Join(dir, MovesFile), &moves); err != nil {
		return nil, err
	}
	return New(tf.Types, tf.Chart, species, moves)
}

// New builds a Dex from already-decoded tables.
//
// Precondition: every type named by chart, species, or moves appears in types.
// Postcondition: Returns a validated Dex, or an error describing all violations.
func New(types []string, chart map[string]map[string]float64, species []*Species, moves []*Move) (*Dex, error) {
	d := &Dex{
		species: make(map[string]*Species, len(species)),
		moves:   make(map[string]*Move, len(moves)),
		known:   make(map[string]bool, len(types)),
		chart:   make(map[string]map[string]damage.Ratio, len(chart)),
	}
	var errs []string

	for _, t := range types {
		key := Normalize(t)
		if key == "" {
			errs = append(errs, "type names must not be empty")
			continue
		}
		if d.known[key] {
			errs = append(errs, fmt.Sprintf("duplicate type %q", t))
			continue
		}
		d.known[key] = true
		d.types = append(d.types, key)
	}

	for atk, row := range chart {
		a := Normalize(atk)
		if !d.known[a] {
			errs = append(errs, fmt.Sprintf("chart: unknown attacking type %q", atk))
			continue
		}
		d.chart[a] = make(map[string]damage.Ratio, len(row))
		for def, f := range row {
			if !d.known[Normalize(def)] {
				errs = append(errs, fmt.Sprintf("chart: unknown defending type %q", def))
				continue
			}
			r, err := damage.EffectivenessFromFloat(f)
			if err != nil {
				errs = append(errs, fmt.Sprintf("chart %s->%s: %v", atk, def, err))
				continue
			}
			d.chart[a][Normalize(def)] = r
		}
	}

	for _, s := range species {
		s.ID = Normalize(s.ID)
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("species %q has no id", s.Name))
			continue
		}
		if _, dup := d.species[s.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate species %q", s.ID))
			continue
		}
		if len(s.Types) < 1 || len(s.Types) > 2 {
			errs = append(errs, fmt.Sprintf("species %q must have 1 or 2 types, got %d", s.ID, len(s.Types)))
			continue
		}
		for i, t := range s.Types {
			s.Types[i] = Normalize(t)
			if !d.known[s.Types[i]] {
				errs = append(errs, fmt.Sprintf("species %q: unknown type %q", s.ID, t))
			}
		}
		d.species[s.ID] = s
	}

	for _, m := range moves {
		m.ID = Normalize(m.ID)
		m.Type = Normalize(m.Type)
		if m.ID == "" {
			errs = append(errs, fmt.Sprintf("move %q has no id", m.Name))
			continue
		}
		if _, dup := d.moves[m.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate move %q", m.ID))
			continue
		}
		if !d.known[m.Type] {
			errs = append(errs, fmt.Sprintf("move %q: unknown type %q", m.ID, m.Type))
		}
		if m.Power < 0 {
			errs = append(errs, fmt.Sprintf("move %q: power must be >= 0, got %d", m.ID, m.Power))
		}
		d.moves[m.ID] = m
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("dex validation failed: %s", strings.Join(errs, "; "))
	}
	return d, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	return nil
}
