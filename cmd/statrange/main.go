// Package main provides the statrange Telnet server. Each connected client
// gets a calculator prompt that infers attacker stats from observed damage.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statrange/internal/config"
	"github.com/cory-johannsen/statrange/internal/frontend/handlers"
	"github.com/cory-johannsen/statrange/internal/frontend/telnet"
	"github.com/cory-johannsen/statrange/internal/game/dex"
	"github.com/cory-johannsen/statrange/internal/game/dice"
	"github.com/cory-johannsen/statrange/internal/game/inference"
	"github.com/cory-johannsen/statrange/internal/observability"
	"github.com/cory-johannsen/statrange/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "statrange")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting statrange",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.Int("workers", cfg.Calculator.Workers),
	)

	dexStart := time.Now()
	d, err := dex.LoadDir(cfg.Calculator.ContentDir)
	if err != nil {
		logger.Fatal("loading reference tables", zap.Error(err))
	}
	logger.Info("reference tables loaded",
		zap.String("dir", cfg.Calculator.ContentDir),
		zap.Int("species", len(d.SpeciesIDs())),
		zap.Int("moves", len(d.MoveIDs())),
		zap.Int("types", len(d.TypeNames())),
		zap.Duration("elapsed", time.Since(dexStart)),
	)

	engine := inference.NewEngine(cfg.Calculator.Workers, logger)
	sampler := dice.NewSampler(dice.NewCryptoSource(), logger)
	calc := handlers.NewCalcHandler(d, engine, sampler, logger)
	acceptor := telnet.NewAcceptor(cfg.Telnet, calc, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})

	logger.Info("statrange initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
