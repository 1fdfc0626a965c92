// Package main provides statcalc, a one-shot command line front end to the
// calculator. The remaining arguments form a single command line, e.g.
//
//	statcalc simple 8 50 20 5
//	statcalc infer damage=40 level=30 move=ember species=bulbasaur defense=50
//	statcalc -seed 7 sample 120 level=30 move=ember types="grass poison" defense=50
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statrange/internal/config"
	"github.com/cory-johannsen/statrange/internal/frontend/handlers"
	"github.com/cory-johannsen/statrange/internal/frontend/telnet"
	"github.com/cory-johannsen/statrange/internal/game/dex"
	"github.com/cory-johannsen/statrange/internal/game/dice"
	"github.com/cory-johannsen/statrange/internal/game/inference"
	"github.com/cory-johannsen/statrange/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "optional path to configuration file")
	contentDir := flag.String("content", "", "reference table directory (overrides config)")
	workers := flag.Int("workers", 0, "verification workers (overrides config)")
	color := flag.Bool("color", false, "keep ANSI colors in output")
	seed := flag.Uint64("seed", 0, "seed for sample rolls so a run can be replayed (0 = random)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: statcalc [flags] <command> [args...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		v := config.New()
		v.SetDefault("logging.level", "warn")
		v.SetDefault("logging.format", "console")
		cfg, err = config.LoadFromViper(v)
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Calculator.ContentDir = *contentDir
	}
	if *workers > 0 {
		cfg.Calculator.Workers = *workers
	}

	logger, err := observability.NewLogger(cfg.Logging, "statcalc")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	d, err := dex.LoadDir(cfg.Calculator.ContentDir)
	if err != nil {
		logger.Warn("reference tables unavailable, name lookups disabled",
			zap.String("dir", cfg.Calculator.ContentDir),
			zap.Error(err),
		)
	}

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	calc := handlers.NewCalcHandler(
		d,
		inference.NewEngine(cfg.Calculator.Workers, logger),
		dice.NewSampler(src, logger),
		logger,
	)

	reply := calc.Execute(context.Background(), commandLine(flag.Args()))
	for _, line := range reply.Lines {
		if !*color {
			line = telnet.StripANSI(line)
		}
		fmt.Println(strings.TrimRight(line, "\r\n"))
	}
	if reply.Err != nil {
		os.Exit(1)
	}
}

// commandLine joins shell arguments into one calculator line, quoting any
// argument the shell kept together so it stays one token.
func commandLine(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsFunc(arg, unicode.IsSpace) {
			arg = `"` + arg + `"`
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
