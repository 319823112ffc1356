package main

import "lineup/internal/types"

// Game configuration constants
const (
	MinYear        = 2000 // Earliest season a random team is drawn from
	MaxYear        = 2024 // Latest season a random team is drawn from
	RosterSize     = 9    // Rows considered when building a lineup
	CloseMatchRate = 0.8  // Similarity ratio accepted as a correct guess
)

// Result message constants
const (
	MessageCorrect      = "Correct!"
	MessageCloseMatch   = "Correct (close match)!"
	MessageIncorrectFmt = "Incorrect. The correct answer is: %s"
	MessageNoGuess      = "No guess made"
)

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome          = "/"
	RouteNewGame       = "/new_game"
	RouteSubmitGuesses = "/submit_guesses"
	RouteGameState     = "/game_state"
	RouteHealthz       = "/healthz"
)

// Error message constants
const (
	ErrorNoActiveGame = "No active game found"
	ErrorGameOver     = "Game is over."
	ErrorNoRosterData = "no roster data available"
	ErrorRateLimited  = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string

// Type aliases for the shared domain types
type (
	GameState      = types.GameState
	PlayerSeason   = types.PlayerSeason
	ResultRecord   = types.ResultRecord
	SubmitResponse = types.SubmitResponse
)
