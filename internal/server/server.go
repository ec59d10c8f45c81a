package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
)

// Server ties the HTTP handler and the spectator hub to one echo instance
type Server struct {
	addr   string
	e      *echo.Echo
	hub    *Hub
	logger *log.Logger
}

// New builds the server around a session
func New(addr string, session *game.Session, logger *log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	hub := NewHub(logger)
	handler := NewHandler(session, hub, logger)
	handler.Register(e)

	return &Server{
		addr:   addr,
		e:      e,
		hub:    hub,
		logger: logger.WithPrefix("server"),
	}
}

// Start runs the hub and serves until Shutdown. It returns
// http.ErrServerClosed after a clean shutdown, like net/http.
func (s *Server) Start() error {
	go s.hub.Run()

	s.logger.Info("Starting server", "addr", s.addr)
	return s.e.Start(s.addr)
}

// Shutdown stops the spectator hub and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	return s.e.Shutdown(ctx)
}
