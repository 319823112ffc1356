package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = app.setSessionCookie(c)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

func (app *App) setSessionCookie(c *gin.Context) string {
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	return sessionID
}

// lookupGameState returns the session's game without creating one.
func (app *App) lookupGameState(sessionID string) (*GameState, bool) {
	app.SessionMutex.RLock()
	game, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		game.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return game, true
	}

	if app.PersistSessions {
		game, err := app.loadGameSessionFromFile(sessionID)
		if err == nil {
			app.SessionMutex.Lock()
			app.GameSessions[sessionID] = game
			app.SessionMutex.Unlock()
			logInfo("Restored game state from disk for session: %s", sessionID)
			return game, true
		}
	}
	return nil, false
}

// getGameState retrieves or creates the GameState for a session.
func (app *App) getGameState(ctx context.Context, sessionID string) (*GameState, error) {
	if game, ok := app.lookupGameState(sessionID); ok {
		logInfo("%sRetrieved cached game state for session: %s", reqPrefix(ctx), sessionID)
		return game, nil
	}
	logInfo("%sCreating new game for session: %s", reqPrefix(ctx), sessionID)
	return app.createNewGame(ctx, sessionID)
}

// createNewGame draws a random team, stores a fresh GameState, and returns it.
func (app *App) createNewGame(ctx context.Context, sessionID string) (*GameState, error) {
	year, team, err := app.randomTeam(ctx)
	if err != nil {
		return nil, err
	}
	game := &GameState{
		Year:           year,
		Team:           team,
		Roster:         app.teamRoster(year, team),
		LastAccessTime: time.Now(),
	}
	logInfo("%sNew game created for session %s: %d %s (%d positions)", reqPrefix(ctx), sessionID, year, team, len(game.Roster))
	app.saveGameState(sessionID, game)
	return game, nil
}

// saveGameState updates the in-memory game state for a session and persists it when enabled.
func (app *App) saveGameState(sessionID string, game *GameState) {
	app.SessionMutex.Lock()
	app.GameSessions[sessionID] = game
	game.LastAccessTime = time.Now()
	app.SessionMutex.Unlock()

	if app.PersistSessions {
		if err := app.saveGameSessionToFile(sessionID, game); err != nil {
			logWarn("Failed to persist session %s: %v", sessionID, err)
		}
	}
}

// deleteGameState forgets a session's game.
func (app *App) deleteGameState(sessionID string) {
	app.SessionMutex.Lock()
	delete(app.GameSessions, sessionID)
	app.SessionMutex.Unlock()
}

// expireSessions drops in-memory sessions idle longer than SessionTimeout.
func (app *App) expireSessions(now time.Time) int {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	removed := 0
	for id, game := range app.GameSessions {
		if now.Sub(game.LastAccessTime) > app.SessionTimeout {
			delete(app.GameSessions, id)
			removed++
		}
	}
	return removed
}

// runSessionJanitor expires idle sessions until ctx is done.
func (app *App) runSessionJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := app.expireSessions(now); n > 0 {
				logInfo("Expired %d idle sessions", n)
			}
			if app.PersistSessions {
				if err := app.cleanupOldSessions(app.SessionTimeout); err != nil {
					logWarn("Session file cleanup failed: %v", err)
				}
			}
		}
	}
}
