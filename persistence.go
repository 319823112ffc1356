package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// sessionFilePath returns the file backing a session, or "" for ids that are not UUIDs.
func (app *App) sessionFilePath(sessionID string) string {
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}
	return filepath.Join(app.SessionDir, sessionID+".json")
}

// saveGameSessionToFile persists a game session to disk
func (app *App) saveGameSessionToFile(sessionID string, game *GameState) error {
	sessionFile := app.sessionFilePath(sessionID)
	if sessionFile == "" {
		logWarn("Skipping save for invalid session ID: %s", sessionID)
		return nil
	}

	if err := os.MkdirAll(app.SessionDir, 0755); err != nil {
		logWarn("Failed to create sessions directory: %v", err)
		return err
	}

	app.SessionMutex.RLock()
	data, err := json.MarshalIndent(game, "", "  ")
	app.SessionMutex.RUnlock()
	if err != nil {
		logWarn("Failed to marshal game state for session %s: %v", sessionID, err)
		return err
	}

	if err := os.WriteFile(sessionFile, data, 0644); err != nil {
		logWarn("Failed to write session file %s: %v", sessionFile, err)
		return err
	}
	logInfo("Saved session file: %s", sessionFile)
	return nil
}

// loadGameSessionFromFile loads a game session from disk
func (app *App) loadGameSessionFromFile(sessionID string) (*GameState, error) {
	sessionFile := app.sessionFilePath(sessionID)
	if sessionFile == "" {
		return nil, os.ErrNotExist
	}

	info, err := os.Stat(sessionFile)
	if err != nil {
		return nil, err
	}

	fileAge := time.Since(info.ModTime())
	if fileAge > app.SessionTimeout {
		logInfo("Session file is too old (%v, max: %v), removing: %s", fileAge, app.SessionTimeout, sessionFile)
		_ = os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		logWarn("Failed to read session file %s: %v", sessionFile, err)
		return nil, err
	}

	var game GameState
	if err := json.Unmarshal(data, &game); err != nil {
		logWarn("Failed to unmarshal session file %s (corrupted), removing: %v", sessionFile, err)
		_ = os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	if len(game.Roster) == 0 || game.Team == "" {
		logWarn("Session file %s has invalid structure (team: %q, positions: %d), removing", sessionFile, game.Team, len(game.Roster))
		_ = os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	game.LastAccessTime = time.Now()
	logInfo("Loaded session from file: %s (%d %s, graded: %v)", sessionFile, game.Year, game.Team, game.Result != nil)
	return &game, nil
}

// cleanupOldSessions removes session files older than maxAge
func (app *App) cleanupOldSessions(maxAge time.Duration) error {
	entries, err := os.ReadDir(app.SessionDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logWarn("Failed to read sessions directory: %v", err)
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removedCount := 0
	errorCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logWarn("Failed to get info for session file %s: %v", entry.Name(), err)
			errorCount++
			continue
		}

		if info.ModTime().Before(cutoff) {
			sessionFile := filepath.Join(app.SessionDir, entry.Name())
			if err := os.Remove(sessionFile); err != nil {
				logWarn("Failed to remove old session file %s: %v", sessionFile, err)
				errorCount++
			} else {
				removedCount++
			}
		}
	}

	logInfo("Session cleanup completed: removed %d files, %d errors", removedCount, errorCount)
	return nil
}
