package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"lineup/internal/types"
)

const (
	NewGamePath = "/new_game"

	MessageNoGuesses    = "Please enter at least one player name before submitting."
	MessageSubmitFailed = "An error occurred while submitting your guesses. Please try again."

	DefaultSubmitTimeout = 15 * time.Second
	DefaultAnnounceDelay = 3 * time.Second
)

var (
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrNoGuesses      = errors.New("no guesses entered")
	ErrGameGraded     = errors.New("game already graded")
	ErrApplication    = errors.New("server reported an error")
)

// Submitter sends a guess set and returns the decoded response.
type Submitter interface {
	SubmitGuesses(ctx context.Context, guesses url.Values) (*types.SubmitResponse, error)
}

// Navigator performs a full navigation to path.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// EventType identifies a user interaction.
type EventType int

const (
	EventClickSubmit EventType = iota
	EventClickNewGame
	EventKeyDown
	EventKeyPress
	EventFocus
	EventBlur
)

// Event is a user interaction. Target is a field id for field events, Key a key name.
type Event struct {
	Type   EventType
	Target string
	Key    string
}

// Controller owns a View and drives the form lifecycle.
type Controller struct {
	view      *View
	submitter Submitter
	navigator Navigator

	SubmitTimeout time.Duration
	AnnounceDelay time.Duration
	Logf          func(format string, v ...any)

	submitting atomic.Bool
}

// NewController binds a controller to view.
func NewController(view *View, submitter Submitter, navigator Navigator) *Controller {
	return &Controller{
		view:          view,
		submitter:     submitter,
		navigator:     navigator,
		SubmitTimeout: DefaultSubmitTimeout,
		AnnounceDelay: DefaultAnnounceDelay,
		Logf: func(format string, v ...any) {
			log.Printf("[WARN] "+format, v...)
		},
	}
}

// Boot runs controller setup followed by the accessibility helper.
func Boot(view *View, submitter Submitter, navigator Navigator) *Controller {
	c := NewController(view, submitter, navigator)
	c.Setup()
	AddSkipLink(view)
	ImproveFormLabels(view)
	return c
}

func (c *Controller) View() *View { return c.view }

// Submitting reports whether a submission is outstanding.
func (c *Controller) Submitting() bool { return c.submitting.Load() }

// Setup gives every labelled field an accessible name and a help reference.
func (c *Controller) Setup() {
	c.view.mu.Lock()
	defer c.view.mu.Unlock()
	for _, f := range c.view.Fields {
		if f.Label == "" {
			continue
		}
		f.AriaDescribedBy = f.ID + "-help"
		f.AriaLabel = "Enter player name for " + f.Label
	}
}

// HandleEvent dispatches a single interaction.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventClickSubmit:
		return c.ignoreDropped(c.Submit(ctx))
	case EventClickNewGame:
		return c.StartNewGame(ctx)
	case EventKeyDown:
		// Enter submits from anywhere on the page while the form is editable.
		if ev.Key == "Enter" && !c.Submitting() && c.view.Phase() == PhaseEditable {
			return c.ignoreDropped(c.Submit(ctx))
		}
	case EventKeyPress, EventFocus, EventBlur:
		c.view.mu.Lock()
		defer c.view.mu.Unlock()
		f := c.view.field(ev.Target)
		if f == nil {
			return nil
		}
		switch ev.Type {
		case EventKeyPress:
			f.KeyPress(ev.Key)
		case EventFocus:
			f.Focus()
		case EventBlur:
			f.Blur()
		}
	}
	return nil
}

// ignoreDropped treats outcomes already shown to the user as handled.
func (c *Controller) ignoreDropped(err error) error {
	if errors.Is(err, ErrSubmitInFlight) || errors.Is(err, ErrGameGraded) {
		return nil
	}
	return err
}

// Submit sends the current guesses and renders the outcome.
// A call made while another is outstanding returns ErrSubmitInFlight without side effects.
func (c *Controller) Submit(ctx context.Context) error {
	if c.view.Phase() == PhaseGraded {
		return ErrGameGraded
	}
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer func() {
		c.submitting.Store(false)
		c.view.setLoading(false)
	}()
	c.view.setLoading(true)

	guesses, hasGuesses := c.view.collectGuesses()
	if !hasGuesses {
		c.view.ShowError(MessageNoGuesses)
		return ErrNoGuesses
	}

	ctx, cancel := context.WithTimeout(ctx, c.SubmitTimeout)
	defer cancel()

	resp, err := c.submitter.SubmitGuesses(ctx, guesses)
	if err == nil && resp == nil {
		err = fmt.Errorf("%w: empty response", ErrApplication)
	}
	if err == nil && resp.Error != "" {
		err = fmt.Errorf("%w: %s", ErrApplication, resp.Error)
	}
	if err != nil {
		c.Logf("Error submitting guesses: %v", err)
		c.view.ShowError(MessageSubmitFailed)
		return err
	}

	c.DisplayResults(resp)
	return nil
}

// DisplayResults moves the view to the graded phase and renders resp.
// Counters are taken verbatim from the server.
func (c *Controller) DisplayResults(resp *types.SubmitResponse) {
	v := c.view
	v.mu.Lock()
	v.phase = PhaseGraded
	v.CorrectCount = strconv.Itoa(resp.CorrectCount)
	v.TotalPlayers = strconv.Itoa(resp.NumPlayers)
	v.Percentage = FormatPercentage(resp.Percentage)
	v.Rows = ResultRows(resp.Results)

	for code, result := range resp.Results {
		f := v.field(code)
		if f == nil {
			continue
		}
		f.Classes.Remove(ClassValid, ClassInvalid)
		switch {
		case result.Correct:
			f.Classes.Add(ClassCorrect)
		case result.Guess != "":
			f.Classes.Add(ClassIncorrect)
		}
		f.AriaLabel = fmt.Sprintf("%s - %s", f.AriaLabel, result.Message)
	}
	for _, f := range v.Fields {
		f.Disabled = true
	}
	v.mu.Unlock()

	c.announce(fmt.Sprintf("Game complete! You got %d out of %d correct, which is %s accuracy.",
		resp.CorrectCount, resp.TotalGuesses, FormatPercentage(resp.Percentage)))
}

// announce adds a live announcement, removed after AnnounceDelay. A non-positive delay keeps it.
func (c *Controller) announce(text string) {
	a := c.view.addAnnouncement(text)
	if c.AnnounceDelay <= 0 {
		return
	}
	time.AfterFunc(c.AnnounceDelay, func() {
		c.view.removeAnnouncement(a)
	})
}

// StartNewGame navigates to the new game route regardless of form state.
func (c *Controller) StartNewGame(ctx context.Context) error {
	return c.navigator.Navigate(ctx, NewGamePath)
}

// ResultRows builds table rows in position order for the positions present in results.
func ResultRows(results map[string]types.ResultRecord) []ResultRow {
	var rows []ResultRow
	for _, code := range types.PositionOrder {
		result, ok := results[code]
		if !ok {
			continue
		}
		guess := result.Guess
		if guess == "" {
			guess = NoGuessText
		}
		rows = append(rows, ResultRow{
			Position:     code,
			PositionName: types.PositionNames[code],
			Guess:        guess,
			Actual:       result.Actual,
			Message:      result.Message,
			Class:        resultClass(result),
		})
	}
	return rows
}

func resultClass(r types.ResultRecord) string {
	switch {
	case r.Correct:
		return ResultCorrect
	case r.Guess != "":
		return ResultIncorrect
	default:
		return ResultNoGuess
	}
}

// FormatPercentage renders p with a trailing percent sign and no padding zeros.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
