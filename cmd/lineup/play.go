package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"

	"lineup/internal/client"
	"lineup/internal/types"
	"lineup/internal/ui"
)

const prompt = "> "

const usage = `Commands:
  <position> <name>  enter a guess, e.g. "C Austin Barnes"
  <position>         clear a guess
  submit             grade your guesses (an empty line also submits)
  new                start a new game
  show               show the lineup form
  quit               leave
`

// session is one terminal game bound to a server.
type session struct {
	cfg    *Config
	client *client.Client
	state  *types.GameStateResponse
	ctrl   *ui.Controller
	out    io.Writer
}

func play(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	c, err := client.New(cfg.server, cfg.timeout)
	if err != nil {
		return err
	}
	s := &session{cfg: cfg, client: c, out: out}
	if err := s.load(ctx); err != nil {
		return err
	}
	fmt.Fprint(out, usage)
	s.show()

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		done, err := s.command(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

// load fetches the session's game and boots a fresh form for it.
func (s *session) load(ctx context.Context) error {
	state, err := s.client.GameState(ctx)
	if err != nil {
		return fmt.Errorf("fetch game: %w", err)
	}
	s.state = state
	s.ctrl = ui.Boot(ui.NewView(state.Positions), s.client, s.client)
	s.ctrl.SubmitTimeout = s.cfg.submitTimeout
	s.ctrl.Logf = func(format string, v ...any) {
		if s.cfg.verbose {
			log.Printf("[WARN] "+format, v...)
		}
	}
	return nil
}

func (s *session) command(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, s.submit(ctx, ui.Event{Type: ui.EventKeyDown, Key: "Enter"})
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "submit":
		return false, s.submit(ctx, ui.Event{Type: ui.EventClickSubmit})
	case "new":
		if err := s.ctrl.HandleEvent(ctx, ui.Event{Type: ui.EventClickNewGame}); err != nil {
			return false, fmt.Errorf("start new game: %w", err)
		}
		if err := s.load(ctx); err != nil {
			return false, err
		}
		s.show()
		return false, nil
	case "show":
		s.show()
		return false, nil
	case "help":
		fmt.Fprint(s.out, usage)
		return false, nil
	}

	code := strings.ToUpper(fields[0])
	field := s.ctrl.View().Field(code)
	if field == nil {
		fmt.Fprintf(s.out, "Unknown position %q. Type help for commands.\n", fields[0])
		return false, nil
	}
	if s.ctrl.View().Graded() {
		fmt.Fprintln(s.out, "This game is over. Type new to play again.")
		return false, nil
	}
	s.typeInto(ctx, code, strings.Join(fields[1:], " "))
	if v := s.ctrl.View().Field(code).Value; v != "" {
		fmt.Fprintf(s.out, "%s: %s\n", code, v)
	} else {
		fmt.Fprintf(s.out, "%s cleared\n", code)
	}
	return false, nil
}

// typeInto replaces a field's value one key at a time, the way a keyboard would.
func (s *session) typeInto(ctx context.Context, code, text string) {
	events := []ui.Event{{Type: ui.EventFocus, Target: code}}
	for range []rune(s.ctrl.View().Field(code).Value) {
		events = append(events, ui.Event{Type: ui.EventKeyPress, Target: code, Key: "Backspace"})
	}
	for _, r := range text {
		events = append(events, ui.Event{Type: ui.EventKeyPress, Target: code, Key: string(r)})
	}
	events = append(events, ui.Event{Type: ui.EventBlur, Target: code})
	for _, ev := range events {
		_ = s.ctrl.HandleEvent(ctx, ev)
	}
}

// submit dispatches ev and prints whatever the form now shows.
func (s *session) submit(ctx context.Context, ev ui.Event) error {
	view := s.ctrl.View()
	if view.Graded() {
		fmt.Fprintln(s.out, "This game is over. Type new to play again.")
		return nil
	}
	err := s.ctrl.HandleEvent(ctx, ev)
	if view.Modal.Visible {
		fmt.Fprintf(s.out, "Error: %s\n", view.Modal.Message)
		view.DismissError()
		return nil
	}
	if err != nil {
		return err
	}
	if view.Graded() {
		s.results()
	}
	return nil
}

func (s *session) show() {
	view := s.ctrl.View()
	fmt.Fprintf(s.out, "\nName the starting lineup of the %d %s.\n", s.state.Year, s.state.Team)
	if !s.state.HasDH {
		fmt.Fprintln(s.out, "This team did not use a designated hitter.")
	}
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	for _, f := range view.Fields {
		value := f.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", f.ID, f.Label, value)
	}
	_ = w.Flush()
}

func (s *session) results() {
	view := s.ctrl.View()
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nPosition\tYour Guess\tActual Player\tResult")
	for _, row := range view.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.PositionName, row.Guess, row.Actual, row.Message)
	}
	_ = w.Flush()
	fmt.Fprintf(s.out, "You got %s out of %s correct (%s).\n", view.CorrectCount, view.TotalPlayers, view.Percentage)
	for _, text := range view.LiveAnnouncements() {
		fmt.Fprintln(s.out, text)
	}
	fmt.Fprintln(s.out, "Type new to play again.")
}
