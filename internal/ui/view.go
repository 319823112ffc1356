package ui

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"lineup/internal/types"
)

// Phase is the form lifecycle. The only transition is Editable -> Graded.
type Phase int

const (
	PhaseEditable Phase = iota
	PhaseGraded
)

func (p Phase) String() string {
	switch p {
	case PhaseEditable:
		return "editable"
	case PhaseGraded:
		return "graded"
	default:
		return "unknown"
	}
}

// Field CSS classes.
const (
	ClassValid     = "is-valid"
	ClassInvalid   = "is-invalid"
	ClassCorrect   = "correct"
	ClassIncorrect = "incorrect"
)

// Result row CSS classes.
const (
	ResultCorrect   = "result-correct"
	ResultIncorrect = "result-incorrect"
	ResultNoGuess   = "result-no-guess"
)

const (
	SubmitLabel     = "Submit Guesses"
	SubmittingLabel = "Submitting..."
	NoGuessText     = "No guess"
)

// ClassList is a set of CSS class names.
type ClassList map[string]struct{}

func (cl ClassList) Add(names ...string) {
	for _, n := range names {
		cl[n] = struct{}{}
	}
}

func (cl ClassList) Remove(names ...string) {
	for _, n := range names {
		delete(cl, n)
	}
}

func (cl ClassList) Has(name string) bool {
	_, ok := cl[name]
	return ok
}

// String renders the classes sorted, space separated.
func (cl ClassList) String() string {
	names := lo.Keys(map[string]struct{}(cl))
	sort.Strings(names)
	return strings.Join(names, " ")
}

// Field is one position input.
type Field struct {
	ID              string
	Name            string
	Label           string
	Value           string
	Classes         ClassList
	Disabled        bool
	AriaLabel       string
	AriaDescribedBy string
}

// Blur sanitizes the displayed value and marks non-empty fields valid.
func (f *Field) Blur() {
	f.Value = Sanitize(f.Value)
	if f.Value != "" {
		f.Classes.Add(ClassValid)
		f.Classes.Remove(ClassInvalid)
	} else {
		f.Classes.Remove(ClassValid, ClassInvalid)
	}
}

// Focus clears grading styles.
func (f *Field) Focus() {
	f.Classes.Remove(ClassCorrect, ClassIncorrect)
}

// KeyPress applies a single key to the field value, dropping characters a name cannot contain.
func (f *Field) KeyPress(key string) {
	if f.Disabled || !KeyAllowed(key) {
		return
	}
	switch key {
	case "Backspace":
		if r := []rune(f.Value); len(r) > 0 {
			f.Value = string(r[:len(r)-1])
		}
		return
	}
	if len([]rune(key)) == 1 {
		f.Value += key
	}
}

// ResultRow is one line of the results table.
type ResultRow struct {
	Position     string
	PositionName string
	Guess        string
	Actual       string
	Message      string
	Class        string
}

// Announcement is a live-region node read by screen readers.
type Announcement struct {
	Text string
}

// HelpText is a hidden description node linked through aria-describedby.
type HelpText struct {
	ID   string
	Text string
}

// SkipLink is the focus-revealed link to the main content.
type SkipLink struct {
	Href string
	Text string
}

// Modal is the error dialog.
type Modal struct {
	Visible bool
	Message string
}

// View holds every element the controller reads or mutates.
type View struct {
	mu sync.Mutex

	phase   Phase
	loading bool

	Fields       []*Field
	Rows         []ResultRow
	CorrectCount string
	TotalPlayers string
	Percentage   string
	Modal        Modal
	SkipLink     *SkipLink
	HelpTexts    []HelpText

	announcements []*Announcement
}

// NewView builds an editable view with one field per position.
func NewView(positions []types.Position) *View {
	v := &View{}
	for _, p := range positions {
		v.Fields = append(v.Fields, &Field{
			ID:      p.Code,
			Name:    p.Code,
			Label:   p.Name,
			Classes: ClassList{},
		})
	}
	return v
}

func (v *View) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

func (v *View) Graded() bool { return v.Phase() == PhaseGraded }

func (v *View) SubmitVisible() bool { return v.Phase() == PhaseEditable }

func (v *View) NewGameVisible() bool { return v.Phase() == PhaseGraded }

func (v *View) ResultsVisible() bool { return v.Phase() == PhaseGraded }

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// SubmitDisabled reports whether the submit control is inert.
func (v *View) SubmitDisabled() bool { return v.Loading() }

func (v *View) SubmitText() string {
	if v.Loading() {
		return SubmittingLabel
	}
	return SubmitLabel
}

// Field returns the field with the given element id, or nil.
func (v *View) Field(id string) *Field {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.field(id)
}

func (v *View) field(id string) *Field {
	f, ok := lo.Find(v.Fields, func(f *Field) bool { return f.ID == id })
	if !ok {
		return nil
	}
	return f
}

// HelpText returns the help node linked to a field, if one was synthesized.
func (v *View) HelpText(id string) (HelpText, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return lo.Find(v.HelpTexts, func(h HelpText) bool { return h.ID == id })
}

// LiveAnnouncements returns the text of announcements still attached.
func (v *View) LiveAnnouncements() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return lo.Map(v.announcements, func(a *Announcement, _ int) string { return a.Text })
}

// ShowError opens the error modal with message.
func (v *View) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Modal = Modal{Visible: true, Message: message}
}

func (v *View) DismissError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Modal.Visible = false
}

func (v *View) setLoading(on bool) {
	v.mu.Lock()
	v.loading = on
	v.mu.Unlock()
}

// collectGuesses returns one sanitized entry per field name and whether any is non-empty.
func (v *View) collectGuesses() (url.Values, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	form := url.Values{}
	hasGuesses := false
	for _, f := range v.Fields {
		value := Sanitize(f.Value)
		form.Add(f.Name, value)
		if value != "" {
			hasGuesses = true
		}
	}
	return form, hasGuesses
}

func (v *View) addAnnouncement(text string) *Announcement {
	v.mu.Lock()
	defer v.mu.Unlock()
	a := &Announcement{Text: text}
	v.announcements = append(v.announcements, a)
	return a
}

func (v *View) removeAnnouncement(a *Announcement) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.announcements = lo.Without(v.announcements, a)
}
