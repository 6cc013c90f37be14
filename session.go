package gosolve

// DefaultPlaceholder is shown in the result area before the first solve and
// after a reset.
const DefaultPlaceholder = "The solution will appear here"

// Session is the presentation state of one equation form: the input text,
// the selected equation type and the text of the result area. Exactly one
// type is selected at any time.
type Session struct {
	evaluator   *Evaluator
	placeholder string

	text   string
	typ    EquationType
	output string
}

func NewSession(ev *Evaluator, placeholder string) *Session {
	if ev == nil {
		ev = New()
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Session{
		evaluator:   ev,
		placeholder: placeholder,
		typ:         Linear,
		output:      placeholder,
	}
}

func (s *Session) Text() string       { return s.text }
func (s *Session) Type() EquationType { return s.typ }
func (s *Session) Output() string     { return s.output }

func (s *Session) SetText(text string) { s.text = text }

// Select makes t the active type. Values other than Linear and Quadratic are
// ignored.
func (s *Session) Select(t EquationType) {
	if t == Linear || t == Quadratic {
		s.typ = t
	}
}

// Toggle switches between Linear and Quadratic.
func (s *Session) Toggle() {
	if s.typ == Linear {
		s.typ = Quadratic
		return
	}
	s.typ = Linear
}

// Solve evaluates the current text under the current type, stores the
// display string and returns it.
func (s *Session) Solve() string {
	s.output = s.evaluator.Display(s.text, s.typ)
	return s.output
}

// Reset clears the input and restores the placeholder. The selected type is
// kept.
func (s *Session) Reset() {
	s.text = ""
	s.output = s.placeholder
}
