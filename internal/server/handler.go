// Package server exposes one game session over HTTP plus a WebSocket
// spectator feed.
package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
)

// Handler serves the session endpoints. The session is not safe for
// concurrent use, so every call that touches it holds mu.
type Handler struct {
	session *game.Session
	mu      sync.Mutex
	hub     *Hub
	logger  *log.Logger
}

// NewHandler creates a handler around an existing session. hub may be nil
// when no spectator feed is wanted.
func NewHandler(session *game.Session, hub *Hub, logger *log.Logger) *Handler {
	return &Handler{
		session: session,
		hub:     hub,
		logger:  logger.WithPrefix("http"),
	}
}

// Register wires the routes onto the echo instance
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/state", h.GetState)
	e.POST("/start_game", h.StartGame)
	e.POST("/draw_card", h.DrawCard)
	e.POST("/play_card", h.PlayCard)
	e.POST("/resolve_favor", h.ResolveFavor)
	if h.hub != nil {
		e.GET("/watch", h.Watch)
	}
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) StartGame(c echo.Context) error {
	var req StartGameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	h.mu.Lock()
	res, err := h.session.Start(req.Name)
	h.mu.Unlock()
	if err != nil {
		return h.mapError(c, err, nil)
	}

	h.broadcast(res.Events)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) DrawCard(c echo.Context) error {
	h.mu.Lock()
	res, err := h.session.Draw()
	h.mu.Unlock()
	if err != nil {
		return h.mapError(c, err, res)
	}

	h.broadcast(res.Events)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) PlayCard(c echo.Context) error {
	var req PlayCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	h.mu.Lock()
	res, err := h.session.Play(req.CardIndex, req.Target)
	h.mu.Unlock()
	if err != nil {
		return h.mapError(c, err, res)
	}

	h.broadcast(res.Events)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ResolveFavor(c echo.Context) error {
	var req ResolveFavorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	h.mu.Lock()
	res, err := h.session.ResolveFavor(req.Card)
	h.mu.Unlock()
	if err != nil {
		return h.mapError(c, err, res)
	}

	h.broadcast(res.Events)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetState(c echo.Context) error {
	h.mu.Lock()
	state := h.session.State()
	h.mu.Unlock()

	return c.JSON(http.StatusOK, state)
}

func (h *Handler) broadcast(events []game.Event) {
	if h.hub == nil || len(events) == 0 {
		return
	}
	h.hub.Broadcast(events)
}

// mapError translates domain sentinels to status codes. res is non-nil when
// the failed operation still mutated state; its events go to the caller and
// the spectator feed so the discard is not silently lost.
func (h *Handler) mapError(c echo.Context, err error, res *game.ActionResult) error {
	body := ErrorResponse{Error: err.Error()}
	if res != nil && len(res.Events) > 0 {
		body.Events = res.Events
		h.broadcast(res.Events)
	}

	switch {
	case errors.Is(err, game.ErrInvalidInput),
		errors.Is(err, game.ErrInvalidCardIndex),
		errors.Is(err, game.ErrIllegalCard),
		errors.Is(err, game.ErrInvalidTarget):
		return c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrPendingAction):
		return c.JSON(http.StatusConflict, body)
	case errors.Is(err, game.ErrNoPendingAction):
		return c.JSON(http.StatusNotFound, body)
	default:
		h.logger.Error("internal error", "error", err)
		body.Error = "internal error"
		return c.JSON(http.StatusInternalServerError, body)
	}
}
