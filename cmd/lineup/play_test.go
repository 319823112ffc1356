package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lineup/internal/types"
)

// fakeServer serves a two-position game and records submitted forms.
type fakeServer struct {
	mu       sync.Mutex
	team     string
	submits  []map[string]string
	newGames int
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/game_state", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		team := f.team
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(types.GameStateResponse{
			Year: 2020,
			Team: team,
			Positions: []types.Position{
				{Code: "C", Name: "Catcher"},
				{Code: "RF", Name: "Right Field"},
			},
		})
	})
	mux.HandleFunc("/submit_guesses", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form := map[string]string{"C": r.PostForm.Get("C"), "RF": r.PostForm.Get("RF")}
		f.mu.Lock()
		f.submits = append(f.submits, form)
		f.mu.Unlock()
		resp := types.SubmitResponse{
			Results: map[string]types.ResultRecord{
				"C":  {Guess: form["C"], Actual: "Austin Barnes", Correct: form["C"] == "Austin Barnes", Message: "Correct!"},
				"RF": {Actual: "Mookie Betts", Message: "No guess made"},
			},
			CorrectCount: 1,
			NumPlayers:   2,
			Percentage:   50,
			TotalGuesses: 1,
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/new_game", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.newGames++
		f.team = "Atlanta Braves"
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func runSession(t *testing.T, fake *fakeServer, input string) string {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	cfg := &Config{server: srv.URL, timeout: 5 * time.Second, submitTimeout: 5 * time.Second}
	var out bytes.Buffer
	if err := play(context.Background(), cfg, strings.NewReader(input), &out); err != nil {
		t.Fatalf("play: %v", err)
	}
	return out.String()
}

func TestPlayEntersAndSubmitsGuesses(t *testing.T) {
	fake := &fakeServer{team: "Los Angeles Dodgers"}
	out := runSession(t, fake, "c Austin  Barnes99\nsubmit\nquit\n")

	if len(fake.submits) != 1 {
		t.Fatalf("submits = %d, want 1", len(fake.submits))
	}
	if got := fake.submits[0]["C"]; got != "Austin Barnes" {
		t.Errorf("submitted C = %q, want sanitized %q", got, "Austin Barnes")
	}
	for _, want := range []string{
		"2020 Los Angeles Dodgers",
		"This team did not use a designated hitter.",
		"C: Austin Barnes",
		"Correct!",
		"You got 1 out of 2 correct (50%).",
		"Game complete! You got 1 out of 1 correct, which is 50% accuracy.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayRejectsEmptySubmission(t *testing.T) {
	fake := &fakeServer{team: "Los Angeles Dodgers"}
	out := runSession(t, fake, "\nquit\n")
	if len(fake.submits) != 0 {
		t.Errorf("empty form should not reach the server, got %d submits", len(fake.submits))
	}
	if !strings.Contains(out, "Error: Please enter at least one player name before submitting.") {
		t.Errorf("output missing no-guess error:\n%s", out)
	}
}

func TestPlayGradedGameIgnoresFurtherInput(t *testing.T) {
	fake := &fakeServer{team: "Los Angeles Dodgers"}
	out := runSession(t, fake, "C Austin Barnes\nsubmit\nRF Mookie Betts\nsubmit\nquit\n")
	if len(fake.submits) != 1 {
		t.Errorf("submits = %d, want 1", len(fake.submits))
	}
	if strings.Count(out, "This game is over.") != 2 {
		t.Errorf("expected two game-over notices:\n%s", out)
	}
}

func TestPlayNewGameReloads(t *testing.T) {
	fake := &fakeServer{team: "Los Angeles Dodgers"}
	out := runSession(t, fake, "C Austin Barnes\nsubmit\nnew\nC Travis d'Arnaud\nquit\n")
	if fake.newGames != 1 {
		t.Errorf("newGames = %d, want 1", fake.newGames)
	}
	if !strings.Contains(out, "2020 Atlanta Braves") {
		t.Errorf("new game was not shown:\n%s", out)
	}
	if !strings.Contains(out, "C: Travis d'Arnaud") {
		t.Errorf("new form should be editable:\n%s", out)
	}
}

func TestPlayUnknownPosition(t *testing.T) {
	fake := &fakeServer{team: "Los Angeles Dodgers"}
	out := runSession(t, fake, "ZZ Somebody\nquit\n")
	if !strings.Contains(out, `Unknown position "ZZ"`) {
		t.Errorf("output missing unknown position notice:\n%s", out)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (&Config{server: ""}).validate(); err == nil {
		t.Error("empty server should be rejected")
	}
	if err := (&Config{server: "http://x", timeout: -time.Second}).validate(); err == nil {
		t.Error("negative timeout should be rejected")
	}
	if err := (&Config{server: "http://x", timeout: time.Second}).validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestNewCmdReadsEnvironment(t *testing.T) {
	t.Setenv("LINEUP_SERVER", "http://example.test:9000")
	cfg := &Config{}
	cmd := newCmd(cfg)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.server != "http://example.test:9000" {
		t.Errorf("server = %q, want value from LINEUP_SERVER", cfg.server)
	}
}
