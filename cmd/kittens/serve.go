package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	rand "math/rand/v2"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/config"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/randutil"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/server"
)

// ServeCmd runs the HTTP server around a single game session
type ServeCmd struct {
	Addr   string `kong:"help='Listen address (overrides config)'"`
	Config string `kong:"default='kittens.hcl',help='Path to HCL config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(c.Debug, cfg.Server.LogLevel)

	var rng *rand.Rand
	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}
	rng = randutil.New(seed)

	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	session := game.NewSession(cfg.GameConfig(), rng, quartz.NewReal(), logger)
	srv := server.New(addr, session, logger)

	logger.Info("Starting Exploding Kittens server",
		"addr", addr,
		"opponents", len(cfg.GameConfig().Opponents))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
