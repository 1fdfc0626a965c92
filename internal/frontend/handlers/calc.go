// Package handlers provides Telnet session handling and command processing
// for the stat range calculator.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statrange/internal/frontend/telnet"
	"github.com/cory-johannsen/statrange/internal/game/command"
	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/game/dex"
	"github.com/cory-johannsen/statrange/internal/game/dice"
	"github.com/cory-johannsen/statrange/internal/game/inference"
	"github.com/cory-johannsen/statrange/internal/game/scenario"
)

// Inferrer runs one inference request. *inference.Engine satisfies it.
type Inferrer interface {
	Infer(ctx context.Context, observed int, c damage.BattleContext) (inference.Result, error)
}

const welcomeBanner = `
` + telnet.Bold + telnet.BrightCyan + `  statrange` + telnet.Reset + `
` + telnet.BrightYellow + `  Work out an attacker's stat from the damage it dealt.` + telnet.Reset + `

  Type ` + telnet.Green + `simple <level> <power> <defense> <damage>` + telnet.Reset + ` for a plain hit.
  Type ` + telnet.Green + `infer damage=N level=N defense=N move=ID [key=value...]` + telnet.Reset + ` for a full scenario.
  Type ` + telnet.Green + `help` + telnet.Reset + ` for every command, ` + telnet.Green + `quit` + telnet.Reset + ` to disconnect.
`

var prompt = telnet.Colorize(telnet.BrightWhite, "statrange> ")

// Reply is the output of one command line.
type Reply struct {
	// Lines are written to the client in order.
	Lines []string
	// Quit ends the session after Lines are written.
	Quit bool
	// Err is the error that produced a notice, if any.
	Err error
}

// CalcHandler implements telnet.SessionHandler and runs the calculator
// command loop for a connected client. It holds no per-session state and is
// safe to share across sessions.
type CalcHandler struct {
	dex      *dex.Dex
	engine   Inferrer
	sampler  *dice.Sampler
	registry *command.Registry
	logger   *zap.Logger
}

// NewCalcHandler creates a CalcHandler.
//
// Precondition: engine, sampler, and logger must be non-nil. d may be nil, in
// which case name lookups and reference commands report that no tables are loaded.
// Postcondition: Returns a CalcHandler ready to handle sessions.
func NewCalcHandler(d *dex.Dex, engine Inferrer, sampler *dice.Sampler, logger *zap.Logger) *CalcHandler {
	return &CalcHandler{
		dex:      d,
		engine:   engine,
		sampler:  sampler,
		registry: command.DefaultRegistry(),
		logger:   logger,
	}
}

// HandleSession implements telnet.SessionHandler. It shows the welcome banner
// and runs commands until the client quits or the context is cancelled.
//
// Postcondition: Returns nil on clean quit, or an error if the session ended abnormally.
func (h *CalcHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	logger := h.logger.With(zap.String("session_id", telnet.SessionID(ctx)))

	if err := conn.Write([]byte(welcomeBanner)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}

	commands := 0
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		if err := conn.WritePrompt(prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if errors.Is(err, telnet.ErrLineTooLong) {
			logger.Debug("input line too long")
			if err := conn.WriteLine(RenderNotice("Input line too long, ignored.")); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading input: %w", err)
		}

		reply := h.Execute(ctx, line)
		if len(reply.Lines) > 0 {
			if err := conn.WriteLines(reply.Lines); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
		}
		commands++

		if reply.Quit {
			logger.Info("client quit",
				zap.Int("commands", commands),
				zap.Duration("session_duration", time.Since(start)),
			)
			return nil
		}
	}
}

// Execute runs one command line and returns its output. Invalid input and
// empty results produce a short notice instead of a chart.
//
// Postcondition: Reply.Err is non-nil exactly when the command failed.
func (h *CalcHandler) Execute(ctx context.Context, line string) Reply {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return Reply{}
	}

	cmd, ok := h.registry.Resolve(parsed.Command)
	if !ok {
		err := fmt.Errorf("unknown command %q", parsed.Command)
		return Reply{
			Lines: []string{telnet.Colorf(telnet.Dim, "Unknown command '%s'. Type help for a list.", parsed.Command)},
			Err:   err,
		}
	}

	fn, ok := handlerMap[cmd.Handler]
	if !ok {
		err := fmt.Errorf("command %q has no handler", cmd.Name)
		h.logger.Error("unwired command", zap.String("command", cmd.Name))
		return Reply{Lines: []string{RenderError(err.Error())}, Err: err}
	}

	reply, err := fn(h, &cmdContext{ctx: ctx, cmd: cmd, parsed: parsed})
	if err != nil {
		return h.failure(cmd, err)
	}
	return reply
}

// failure renders err as a notice when it describes bad input, or as an
// internal error otherwise.
func (h *CalcHandler) failure(cmd *command.Command, err error) Reply {
	switch {
	case errors.Is(err, damage.ErrInvalidInput),
		errors.Is(err, dex.ErrUnknownSpecies),
		errors.Is(err, dex.ErrUnknownMove),
		errors.Is(err, dex.ErrUnknownType),
		errors.Is(err, scenario.ErrNoDex):
		h.logger.Debug("command rejected", zap.String("command", cmd.Name), zap.Error(err))
		lines := []string{RenderNotice(capitalize(err.Error()) + ".")}
		if cmd.Usage != "" {
			lines = append(lines, telnet.Colorf(telnet.Dim, "Usage: %s %s", cmd.Name, cmd.Usage))
		}
		return Reply{Lines: lines, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Reply{Lines: []string{RenderNotice("Request cancelled.")}, Err: err}
	default:
		h.logger.Error("command failed", zap.String("command", cmd.Name), zap.Error(err))
		return Reply{Lines: []string{RenderError("Internal error, see server log.")}, Err: err}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
