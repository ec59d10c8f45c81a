package main

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/config"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/randutil"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/tui"
)

// PlayCmd runs a local game against the automated opponents
type PlayCmd struct {
	Name   string `kong:"default='You',help='Your player name'"`
	Config string `kong:"default='kittens.hcl',help='Path to HCL config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Keep the log quiet so it does not fight the rendered output
	logger := log.NewWithOptions(io.Discard, log.Options{})
	if c.Debug {
		logger = setupLogger(true, "debug")
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	session := game.NewSession(cfg.GameConfig(), randutil.New(seed), quartz.NewReal(), logger)
	res, err := session.Start(c.Name)
	if err != nil {
		return err
	}

	model := tui.NewModel(session, res.Events, logger)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
