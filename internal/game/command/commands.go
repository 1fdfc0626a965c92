// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryCalc      = "calculator"
	CategoryReference = "reference"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to session handlers.
const (
	HandlerSimple  = "simple"
	HandlerInfer   = "infer"
	HandlerSample  = "sample"
	HandlerSpecies = "species"
	HandlerMoves   = "moves"
	HandlerTypes   = "types"
	HandlerQuit    = "quit"
	HandlerHelp    = "help"
)

// Command defines a user-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage is the argument synopsis shown by help.
	Usage string
	// Help is the short help text displayed to users.
	Help string
	// Category groups the command (calculator, reference, system).
	Category string
	// Handler maps to the session handler for this command.
	Handler string
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Command {
	return []Command{
		// Calculator commands
		{Name: "simple", Aliases: []string{"s"}, Usage: "<level> <power> <defense> <damage>", Help: "Infer from a typeless physical hit with no modifiers", Category: CategoryCalc, Handler: HandlerSimple},
		{Name: "infer", Aliases: []string{"calc", "i"}, Usage: "damage=N level=N defense=N move=ID|power=N [key=value...]", Help: "Infer the attacker's stat from a full battle scenario", Category: CategoryCalc, Handler: HandlerInfer},
		{Name: "sample", Aliases: []string{"roll"}, Usage: "<stat> level=N defense=N move=ID|power=N [key=value...]", Help: "Simulate one hit for a known stat", Category: CategoryCalc, Handler: HandlerSample},

		// Reference commands
		{Name: "species", Aliases: []string{"dex"}, Usage: "[id]", Help: "List species or show one species' types", Category: CategoryReference, Handler: HandlerSpecies},
		{Name: "moves", Aliases: []string{"move"}, Usage: "[id]", Help: "List moves or show one move", Category: CategoryReference, Handler: HandlerMoves},
		{Name: "types", Aliases: nil, Usage: "[attacking] [defending]", Help: "List types or show an effectiveness multiplier", Category: CategoryReference, Handler: HandlerTypes},

		// System commands
		{Name: "quit", Aliases: []string{"exit"}, Help: "Disconnect", Category: CategorySystem, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Usage: "[command]", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}
