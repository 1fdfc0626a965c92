package command

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/game/scenario"
)

// simpleKeys is the positional argument order of the simple command.
var simpleKeys = []string{"level", "power", "defense", "damage"}

// SimpleScenario parses the arguments of the simple command: up to four
// positional numbers in level, power, defense, damage order, or key=value
// pairs restricted to those keys.
//
// Postcondition: Returns a Scenario whose Move is Manual, or an error wrapping
// damage.ErrInvalidInput. Missing values surface when the Scenario is resolved.
func SimpleScenario(args []string) (scenario.Scenario, error) {
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		if len(args) > len(simpleKeys) {
			return scenario.Scenario{}, fmt.Errorf("%w: simple takes at most %d values, got %d", damage.ErrInvalidInput, len(simpleKeys), len(args))
		}
		kv := make([]string, len(args))
		for i, a := range args {
			if strings.Contains(a, "=") {
				return scenario.Scenario{}, fmt.Errorf("%w: cannot mix positional and key=value arguments", damage.ErrInvalidInput)
			}
			kv[i] = simpleKeys[i] + "=" + a
		}
		args = kv
	}
	for _, a := range args {
		k, _, _ := strings.Cut(a, "=")
		if canon, ok := scenario.CanonicalKey(k); ok && !slices.Contains(simpleKeys, canon) {
			return scenario.Scenario{}, fmt.Errorf("%w: simple does not accept %q, use infer", damage.ErrInvalidInput, k)
		}
	}
	s, err := scenario.Parse(args)
	if err != nil {
		return scenario.Scenario{}, err
	}
	if s.Move == nil {
		s.Move = scenario.Manual{}
	}
	return s, nil
}

// SampleRequest parses the arguments of the sample command. The first
// argument is the attacker's stat, either bare or as stat=N; the rest describe
// the scenario without a damage value.
//
// Postcondition: Returns stat >= 1 and a Scenario whose Observed is a
// placeholder, or an error wrapping damage.ErrInvalidInput.
func SampleRequest(args []string) (int, scenario.Scenario, error) {
	if len(args) == 0 {
		return 0, scenario.Scenario{}, fmt.Errorf("%w: missing input: stat", damage.ErrInvalidInput)
	}
	raw := strings.TrimPrefix(strings.ToLower(args[0]), "stat=")
	stat, err := strconv.Atoi(raw)
	if err != nil || stat < 1 {
		return 0, scenario.Scenario{}, fmt.Errorf("%w: stat must be a positive integer, got %q", damage.ErrInvalidInput, args[0])
	}
	s, err := scenario.Parse(args[1:])
	if err != nil {
		return 0, scenario.Scenario{}, err
	}
	if s.Observed != nil {
		return 0, scenario.Scenario{}, fmt.Errorf("%w: sample does not take a damage value", damage.ErrInvalidInput)
	}
	placeholder := 1
	s.Observed = &placeholder
	return stat, s, nil
}
