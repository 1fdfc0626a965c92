package handlers

import (
	"context"
	"fmt"

	"github.com/cory-johannsen/statrange/internal/frontend/telnet"
	"github.com/cory-johannsen/statrange/internal/game/command"
	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/game/scenario"
)

// cmdContext carries all inputs a command handler needs.
type cmdContext struct {
	ctx    context.Context
	cmd    *command.Command
	parsed command.ParseResult
}

// handlerFunc is the signature for all command dispatch functions.
type handlerFunc func(h *CalcHandler, cc *cmdContext) (Reply, error)

// Handlers returns the map from Handler constant to dispatch function.
// Exported so TestAllCommandHandlersAreWired can verify completeness.
func Handlers() map[string]handlerFunc {
	return handlerMap
}

// handlerMap is the single source of truth for command dispatch.
// To add a new command: add a Handler constant to commands.go AND add an entry here.
var handlerMap = map[string]handlerFunc{
	command.HandlerSimple:  handleSimple,
	command.HandlerInfer:   handleInfer,
	command.HandlerSample:  handleSample,
	command.HandlerSpecies: handleSpecies,
	command.HandlerMoves:   handleMoves,
	command.HandlerTypes:   handleTypes,
	command.HandlerHelp:    handleHelp,
	command.HandlerQuit:    handleQuit,
}

func handleSimple(h *CalcHandler, cc *cmdContext) (Reply, error) {
	s, err := command.SimpleScenario(cc.parsed.Args)
	if err != nil {
		return Reply{}, err
	}
	return h.infer(cc.ctx, s)
}

func handleInfer(h *CalcHandler, cc *cmdContext) (Reply, error) {
	s, err := scenario.Parse(cc.parsed.Args)
	if err != nil {
		return Reply{}, err
	}
	return h.infer(cc.ctx, s)
}

// infer resolves s and runs it through the engine.
//
// Postcondition: On success the first line summarizes the battle and the
// rest is RenderResult output.
func (h *CalcHandler) infer(ctx context.Context, s scenario.Scenario) (Reply, error) {
	r, err := s.Resolve(h.dex)
	if err != nil {
		return Reply{}, err
	}
	res, err := h.engine.Infer(ctx, r.Observed, r.Battle)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Lines: append([]string{RenderBattle(r.Battle)}, RenderResult(res)...)}, nil
}

func handleSample(h *CalcHandler, cc *cmdContext) (Reply, error) {
	stat, s, err := command.SampleRequest(cc.parsed.Args)
	if err != nil {
		return Reply{}, err
	}
	r, err := s.Resolve(h.dex)
	if err != nil {
		return Reply{}, err
	}
	sample, err := h.sampler.Draw(stat, r.Battle)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Lines: []string{RenderBattle(r.Battle), RenderSample(sample)}}, nil
}

func handleSpecies(h *CalcHandler, cc *cmdContext) (Reply, error) {
	if h.dex == nil {
		return Reply{}, scenario.ErrNoDex
	}
	if len(cc.parsed.Args) == 0 {
		return Reply{Lines: RenderList("Species", h.dex.SpeciesIDs(), 8)}, nil
	}
	sp, err := h.dex.Species(cc.parsed.RawArgs)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Lines: []string{RenderSpecies(sp)}}, nil
}

func handleMoves(h *CalcHandler, cc *cmdContext) (Reply, error) {
	if h.dex == nil {
		return Reply{}, scenario.ErrNoDex
	}
	if len(cc.parsed.Args) == 0 {
		return Reply{Lines: RenderList("Moves", h.dex.MoveIDs(), 8)}, nil
	}
	mv, err := h.dex.Move(cc.parsed.RawArgs)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Lines: []string{RenderMove(mv)}}, nil
}

// handleTypes lists the types, one attacking type's non-neutral matchups, or
// a single matchup.
func handleTypes(h *CalcHandler, cc *cmdContext) (Reply, error) {
	if h.dex == nil {
		return Reply{}, scenario.ErrNoDex
	}
	args := cc.parsed.Args
	switch len(args) {
	case 0:
		return Reply{Lines: RenderList("Types", h.dex.TypeNames(), 9)}, nil
	case 1:
		lines := []string{telnet.Colorf(telnet.BrightWhite, "%s attacking:", args[0])}
		for _, def := range h.dex.TypeNames() {
			r, err := h.dex.Effectiveness(args[0], def)
			if err != nil {
				return Reply{}, err
			}
			if !r.IsUnit() {
				lines = append(lines, fmt.Sprintf("  %-10s %s", def, r))
			}
		}
		return Reply{Lines: lines}, nil
	case 2:
		r, err := h.dex.Effectiveness(args[0], args[1])
		if err != nil {
			return Reply{}, err
		}
		return Reply{Lines: []string{fmt.Sprintf("  %s -> %s: %s", args[0], args[1], r)}}, nil
	}
	return Reply{}, fmt.Errorf("%w: types takes at most 2 arguments", damage.ErrInvalidInput)
}

func handleHelp(h *CalcHandler, cc *cmdContext) (Reply, error) {
	if len(cc.parsed.Args) > 0 {
		cmd, ok := h.registry.Resolve(cc.parsed.Args[0])
		if !ok {
			return Reply{}, fmt.Errorf("%w: no command %q", damage.ErrInvalidInput, cc.parsed.Args[0])
		}
		return Reply{Lines: RenderCommandHelp(cmd)}, nil
	}
	return Reply{Lines: append(RenderHelp(h.registry), RenderKeys(scenario.Keys()))}, nil
}

func handleQuit(_ *CalcHandler, _ *cmdContext) (Reply, error) {
	return Reply{Lines: []string{telnet.Colorize(telnet.Cyan, "Goodbye!")}, Quit: true}, nil
}
