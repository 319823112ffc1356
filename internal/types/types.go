package types

import "time"

// Position codes in display order.
const (
	PositionCatcher     = "C"
	PositionFirstBase   = "1B"
	PositionSecondBase  = "2B"
	PositionThirdBase   = "3B"
	PositionShortstop   = "SS"
	PositionLeftField   = "LF"
	PositionCenterField = "CF"
	PositionRightField  = "RF"
	PositionDH          = "DH"
)

// PositionOrder is the fixed order used for forms and result tables.
var PositionOrder = []string{
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
	PositionDH,
}

// PositionNames maps a position code to its display name.
var PositionNames = map[string]string{
	PositionCatcher:     "Catcher",
	PositionFirstBase:   "First Base",
	PositionSecondBase:  "Second Base",
	PositionThirdBase:   "Third Base",
	PositionShortstop:   "Shortstop",
	PositionLeftField:   "Left Field",
	PositionCenterField: "Center Field",
	PositionRightField:  "Right Field",
	PositionDH:          "Designated Hitter",
}

type Position struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PlayerSeason struct {
	Year        int    `json:"year"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	PlayerName  string `json:"player_name"`
	GamesPlayed int    `json:"games_played"`
}

type ResultRecord struct {
	Guess      string  `json:"guess"`
	Actual     string  `json:"actual"`
	Correct    bool    `json:"correct"`
	Message    string  `json:"message"`
	Similarity float64 `json:"similarity"`
}

type SubmitResponse struct {
	Results      map[string]ResultRecord `json:"results,omitempty"`
	CorrectCount int                     `json:"correct_count"`
	NumPlayers   int                     `json:"num_players"`
	Percentage   float64                 `json:"percentage"`
	TotalGuesses int                     `json:"total_guesses"`
	Year         int                     `json:"year,omitempty"`
	Team         string                  `json:"team,omitempty"`
	Error        string                  `json:"error,omitempty"`
}

type GameStateResponse struct {
	Year      int        `json:"year"`
	Team      string     `json:"team"`
	Positions []Position `json:"positions"`
	HasDH     bool       `json:"has_dh"`
	Graded    bool       `json:"graded"`
}

type GameState struct {
	Year           int               `json:"year"`
	Team           string            `json:"team"`
	Roster         map[string]string `json:"roster"`
	Result         *SubmitResponse   `json:"result,omitempty"`
	LastAccessTime time.Time         `json:"lastAccessTime"`
}
