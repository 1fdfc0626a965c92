package scenario

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// keyAliases maps accepted argument keys to their canonical name.
var keyAliases = map[string]string{
	"dmg":         "damage",
	"damage":      "damage",
	"level":       "level",
	"lvl":         "level",
	"def":         "defense",
	"defense":     "defense",
	"spd":         "defense",
	"power":       "power",
	"bp":          "power",
	"type":        "type",
	"category":    "category",
	"cat":         "category",
	"move":        "move",
	"species":     "species",
	"defender":    "species",
	"types":       "types",
	"attacker":    "attacker",
	"defstage":    "defstage",
	"atkstage":    "atkstage",
	"offstage":    "atkstage",
	"badge":       "badge",
	"stab":        "stab",
	"crit":        "crit",
	"dd":          "dd",
	"charge":      "dd",
	"burn":        "burn",
	"burned":      "burn",
	"screen":      "screen",
	"reflect":     "screen",
	"lightscreen": "screen",
	"ff":          "ff",
	"flashfire":   "ff",
	"thickfat":    "thickfat",
	"weather":     "weather",
	"sport":       "sport",
}

// Keys returns the canonical argument keys accepted by Parse, sorted.
func Keys() []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range keyAliases {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// CanonicalKey returns the canonical name for an argument key or alias.
func CanonicalKey(key string) (string, bool) {
	k, ok := keyAliases[strings.ToLower(key)]
	return k, ok
}

// Parse builds a Scenario from "key=value" arguments. A bare key is a
// boolean set to true. Move and defender identities are not resolved here.
//
// Postcondition: Returns a Scenario, or an error wrapping damage.ErrInvalidInput
// that names the offending argument.
func Parse(args []string) (Scenario, error) {
	var s Scenario
	var manual *Manual
	var moveID string

	for _, arg := range args {
		rawKey, value, hasValue := strings.Cut(arg, "=")
		key, ok := CanonicalKey(rawKey)
		if !ok {
			return Scenario{}, fmt.Errorf("%w: unknown argument %q", damage.ErrInvalidInput, rawKey)
		}
		if !hasValue {
			value = "true"
		}

		var err error
		switch key {
		case "damage":
			s.Observed, err = intPtr(value)
		case "level":
			s.Level, err = intPtr(value)
		case "defense":
			s.Defense, err = intPtr(value)
		case "power":
			if manual == nil {
				manual = &Manual{}
			}
			manual.Power, err = strconv.Atoi(value)
		case "type":
			if manual == nil {
				manual = &Manual{}
			}
			manual.Type = value
		case "category":
			if manual == nil {
				manual = &Manual{}
			}
			manual.Category = value
		case "move":
			moveID = value
		case "species":
			s.Defender = BySpecies{ID: value}
		case "types":
			s.Defender = ByTypes{Types: splitTypes(value)}
		case "attacker":
			s.Attacker = value
		case "defstage":
			s.DefenseStage, err = strconv.Atoi(value)
		case "atkstage":
			s.OffenseStage, err = strconv.Atoi(value)
		case "badge":
			s.DefenseBadge, err = parseBool(value)
		case "stab":
			s.STAB, err = parseBool(value)
		case "crit":
			s.Critical, err = parseBool(value)
		case "dd":
			s.DoubleDamage, err = parseBool(value)
		case "burn":
			s.Burned, err = parseBool(value)
		case "screen":
			s.Screen, err = parseBool(value)
		case "ff":
			s.FlashFire, err = parseBool(value)
		case "thickfat":
			s.ThickFat, err = parseBool(value)
		case "weather":
			s.Weather, err = damage.ParseWeather(value)
		case "sport":
			s.Sport, err = damage.ParseSport(value)
		}
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: %s: %v", damage.ErrInvalidInput, rawKey, err)
		}
	}

	switch {
	case moveID != "" && manual != nil:
		return Scenario{}, fmt.Errorf("%w: move cannot be combined with power/type/category", damage.ErrInvalidInput)
	case moveID != "":
		s.Move = ByName{ID: moveID}
	case manual != nil:
		s.Move = *manual
	}
	return s, nil
}

func intPtr(v string) (*int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "on", "y":
		return true, nil
	case "no", "off", "n":
		return false, nil
	}
	return strconv.ParseBool(v)
}

func splitTypes(v string) []string {
	var out []string
	for _, t := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '/' || unicode.IsSpace(r) }) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
