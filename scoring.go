package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"lineup/internal/types"
	"lineup/internal/ui"
)

// compareNames matches a guess case-insensitively, accepting close spellings.
// The returned ratio is 1 for an exact match.
func compareNames(guess, actual string) (bool, float64) {
	if guess == "" || actual == "" {
		return false, 0
	}
	g := strings.ToLower(strings.TrimSpace(guess))
	a := strings.ToLower(strings.TrimSpace(actual))
	if g == a {
		return true, 1.0
	}
	ratio := difflib.NewMatcher(strings.Split(g, ""), strings.Split(a, "")).Ratio()
	return ratio >= CloseMatchRate, ratio
}

// evaluateGuesses grades guesses against roster. Only roster positions are graded.
func evaluateGuesses(guesses, roster map[string]string) SubmitResponse {
	resp := SubmitResponse{Results: make(map[string]ResultRecord, len(roster))}

	for _, code := range types.PositionOrder {
		actual, ok := roster[code]
		if !ok {
			continue
		}
		guess := ui.Sanitize(guesses[code])
		if guess == "" {
			resp.Results[code] = ResultRecord{Actual: actual, Message: MessageNoGuess}
			continue
		}

		resp.TotalGuesses++
		correct, similarity := compareNames(guess, actual)
		record := ResultRecord{
			Guess:      guess,
			Actual:     actual,
			Correct:    correct,
			Similarity: similarity,
		}
		switch {
		case correct && similarity == 1.0:
			record.Message = MessageCorrect
		case correct:
			record.Message = MessageCloseMatch
		default:
			record.Message = fmt.Sprintf(MessageIncorrectFmt, actual)
		}
		if correct {
			resp.CorrectCount++
		}
		resp.Results[code] = record
	}

	resp.NumPlayers = len(roster)
	if resp.TotalGuesses > 0 && resp.NumPlayers > 0 {
		pct := float64(resp.CorrectCount) / float64(resp.NumPlayers) * 100
		resp.Percentage = math.Round(pct*10) / 10
	}
	return resp
}
