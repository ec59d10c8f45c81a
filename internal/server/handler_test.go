package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/randutil"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := log.NewWithOptions(io.Discard, log.Options{})
	session := game.NewSession(game.DefaultConfig(), randutil.New(7), quartz.NewMock(t), logger)

	e := echo.New()
	NewHandler(session, nil, logger).Register(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestStateBeforeStart(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var state game.StateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.False(t, state.Started)
	assert.Equal(t, game.NoActivePlayer, state.CurrentPlayer)
}

func TestStartGame(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/start_game", `{"name":"Ann"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res game.StartResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.SessionID)
	require.Len(t, res.Players, 2)
	assert.Equal(t, "Ann", res.Players[0].Name)
	assert.True(t, res.Players[0].IsHuman)
}

func TestStartGameRejectsEmptyName(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/start_game", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartGameRejectsBadBody(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/start_game", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrawBeforeStartConflicts(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/draw_card", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Error)
}

func TestDrawCard(t *testing.T) {
	e := newTestServer(t)
	doJSON(e, http.MethodPost, "/start_game", `{"name":"Ann"}`)

	rec := doJSON(e, http.MethodPost, "/draw_card", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res game.ActionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Events)
}

func TestPlayCardRejectsBadIndex(t *testing.T) {
	e := newTestServer(t)
	doJSON(e, http.MethodPost, "/start_game", `{"name":"Ann"}`)

	rec := doJSON(e, http.MethodPost, "/play_card", `{"card_index":99}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMapErrorCarriesPartialEvents(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	session := game.NewSession(game.DefaultConfig(), randutil.New(7), quartz.NewMock(t), logger)
	h := NewHandler(session, nil, logger)

	req := httptest.NewRequest(http.MethodPost, "/play_card", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	res := &game.ActionResult{Events: []game.Event{
		{Kind: game.EventPlay, Message: "Ann played Favor"},
	}}
	require.NoError(t, h.mapError(c, game.ErrInvalidTarget, res))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
	require.Len(t, body.Events, 1)
	assert.Equal(t, game.EventPlay, body.Events[0].Kind)
}

func TestResolveFavorWithoutHandshake(t *testing.T) {
	e := newTestServer(t)
	doJSON(e, http.MethodPost, "/start_game", `{"name":"Ann"}`)

	rec := doJSON(e, http.MethodPost, "/resolve_favor", `{"card":"Skip"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
