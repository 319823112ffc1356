package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"lineup/internal/types"
	"lineup/internal/ui"
)

// homeHandler renders the game page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	game, err := app.getGameState(ctx, sessionID)
	if err != nil {
		logWarn("%sFailed to start game: %v", reqPrefix(ctx), err)
		c.String(http.StatusInternalServerError, "Unable to start a game.")
		return
	}
	renderPage(c, http.StatusOK, game, "")
}

// newGameHandler discards the session's game, draws a new team, and redirects home.
func (app *App) newGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	app.deleteGameState(sessionID)
	logInfo("%sCleared old session data for: %s", reqPrefix(ctx), sessionID)

	if c.Query("reset") == "1" {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, "", -1, "/", "", app.IsProduction, true)
		sessionID = app.setSessionCookie(c)
		logInfo("%sCreated new session ID: %s", reqPrefix(ctx), sessionID)
	}

	if _, err := app.createNewGame(ctx, sessionID); err != nil {
		logWarn("%sFailed to create new game: %v", reqPrefix(ctx), err)
		c.String(http.StatusInternalServerError, "Unable to start a game.")
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// submitGuessesHandler grades the posted guesses once per game.
func (app *App) submitGuessesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	game, ok := app.lookupGameState(sessionID)
	if !ok || len(game.Roster) == 0 {
		logWarn("%sSubmission without an active game for session: %s", reqPrefix(ctx), sessionID)
		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, RouteHome)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorNoActiveGame})
		return
	}

	guesses := make(map[string]string)
	for _, code := range types.PositionOrder {
		if guess := ui.Sanitize(c.PostForm(code)); guess != "" {
			guesses[code] = guess
		}
	}

	if len(guesses) == 0 {
		app.SessionMutex.RLock()
		graded := game.Result != nil
		app.SessionMutex.RUnlock()
		if !graded {
			logInfo("%sSession %s submitted an empty form", reqPrefix(ctx), sessionID)
			if wantsHTML(c) {
				renderPage(c, http.StatusOK, game, ui.MessageNoGuesses)
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": ui.MessageNoGuesses})
			return
		}
	}

	app.SessionMutex.Lock()
	if game.Result != nil {
		app.SessionMutex.Unlock()
		logWarn("%sSession %s attempted to resubmit a graded game", reqPrefix(ctx), sessionID)
		if wantsHTML(c) {
			renderPage(c, http.StatusConflict, game, ErrorGameOver)
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": ErrorGameOver})
		return
	}
	resp := evaluateGuesses(guesses, game.Roster)
	resp.Year = game.Year
	resp.Team = game.Team
	game.Result = &resp
	app.SessionMutex.Unlock()
	app.saveGameState(sessionID, game)

	logInfo("%sSession %s graded %d %s: %d/%d correct (%d guesses)",
		reqPrefix(ctx), sessionID, game.Year, game.Team, resp.CorrectCount, resp.NumPlayers, resp.TotalGuesses)

	if wantsHTML(c) {
		renderPage(c, http.StatusOK, game, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// gameStateHandler returns the session's team and positions as JSON.
func (app *App) gameStateHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	game, err := app.getGameState(ctx, sessionID)
	if err != nil {
		logWarn("%sFailed to start game: %v", reqPrefix(ctx), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	app.SessionMutex.RLock()
	state := types.GameStateResponse{
		Year:      game.Year,
		Team:      game.Team,
		Positions: rosterPositions(game.Roster),
		HasDH:     hasDesignatedHitter(game.Roster),
		Graded:    game.Result != nil,
	}
	app.SessionMutex.RUnlock()
	c.JSON(http.StatusOK, state)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	app.SessionMutex.RLock()
	sessions := len(app.GameSessions)
	app.SessionMutex.RUnlock()
	teams := lo.Uniq(lo.Map(app.Data, func(row PlayerSeason, _ int) string {
		return row.Team
	}))
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"rows_loaded":     len(app.Data),
		"teams_loaded":    len(teams),
		"active_sessions": sessions,
		"uptime":          formatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
