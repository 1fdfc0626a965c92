package command

import (
	"fmt"
	"slices"
	"strings"
)

// Registry resolves typed words to calculator commands. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	byWord map[string]*Command // names and aliases, lowercased
	sorted []*Command          // by name
}

// NewRegistry indexes cmds by name and alias.
//
// Precondition: every command has a Name and a Handler.
// Postcondition: Returns a Registry, or an error naming the first collision
// between names and aliases.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{byWord: make(map[string]*Command)}
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Name == "" || cmd.Handler == "" {
			return nil, fmt.Errorf("command %d: name and handler are required", i)
		}
		if prev, ok := r.byWord[strings.ToLower(cmd.Name)]; ok {
			if prev.Name == cmd.Name {
				return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
			}
			return nil, fmt.Errorf("command name %q collides with %q", cmd.Name, prev.Name)
		}
		r.byWord[strings.ToLower(cmd.Name)] = cmd
		r.sorted = append(r.sorted, cmd)
	}
	// Aliases go in after every name so an alias can never hide a name.
	for _, cmd := range r.sorted {
		for _, alias := range cmd.Aliases {
			key := strings.ToLower(alias)
			prev, ok := r.byWord[key]
			switch {
			case !ok:
				r.byWord[key] = cmd
			case prev.Name == key:
				return nil, fmt.Errorf("alias %q of %q conflicts with command name %q", alias, cmd.Name, prev.Name)
			default:
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, prev.Name, cmd.Name)
			}
		}
	}
	slices.SortFunc(r.sorted, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })
	return r, nil
}

// DefaultRegistry returns a Registry of BuiltinCommands. It panics if the
// built-in table has a collision.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve finds the command for word. An exact name or alias wins; otherwise
// a prefix of exactly one command's name or aliases selects it, so "spe"
// resolves to species.
//
// Postcondition: Returns (command, true), or (nil, false) when word is
// unknown or ambiguous.
func (r *Registry) Resolve(word string) (*Command, bool) {
	word = strings.ToLower(word)
	if word == "" {
		return nil, false
	}
	if cmd, ok := r.byWord[word]; ok {
		return cmd, true
	}
	var match *Command
	for w, cmd := range r.byWord {
		if !strings.HasPrefix(w, word) {
			continue
		}
		if match != nil && match != cmd {
			return nil, false
		}
		match = cmd
	}
	return match, match != nil
}

// Commands returns every command sorted by name.
func (r *Registry) Commands() []*Command {
	return slices.Clone(r.sorted)
}

// CommandsByCategory groups Commands by category, each group sorted by name.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	out := make(map[string][]*Command)
	for _, cmd := range r.sorted {
		out[cmd.Category] = append(out[cmd.Category], cmd)
	}
	return out
}
