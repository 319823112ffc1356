package main

import (
	"github.com/gin-gonic/gin"

	"lineup/internal/ui"
)

const pageTitle = "Baseball Position Guessing Game"

// newPageView builds the form view for game, graded when a result exists.
func newPageView(game *GameState) *ui.View {
	view := ui.NewView(rosterPositions(game.Roster))
	ctrl := ui.Boot(view, nil, nil)
	ctrl.AnnounceDelay = 0
	if game.Result != nil {
		for code, result := range game.Result.Results {
			if f := view.Field(code); f != nil {
				f.Value = result.Guess
			}
		}
		ctrl.DisplayResults(game.Result)
	}
	return view
}

// wantsHTML reports whether the client negotiated a full page over JSON.
func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

// renderPage renders index.html for game with status, optionally showing an error dialog.
func renderPage(c *gin.Context, status int, game *GameState, errMsg string) {
	view := newPageView(game)
	if errMsg != "" {
		view.ShowError(errMsg)
	}
	c.HTML(status, "index.html", gin.H{
		"title": pageTitle,
		"year":  game.Year,
		"team":  game.Team,
		"hasDH": hasDesignatedHitter(game.Roster),
		"view":  view,
	})
}
