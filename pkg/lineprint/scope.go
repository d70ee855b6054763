package lineprint

// Tracker follows brace nesting across the lines of one input.
// It keeps a stack of buffers, one per open nesting level, each holding the
// accumulated text of everything finalized at that level so far. The bottom
// buffer is the implicit top-level scope and is never popped.
type Tracker struct {
	scopes []string
}

func NewTracker() *Tracker {
	return &Tracker{scopes: []string{""}}
}

// Depth returns the number of open nesting levels, including the implicit
// top-level scope. Always >= 1.
func (t *Tracker) Depth() int {
	return len(t.scopes)
}

// Feed consumes one line and returns the candidate string to fingerprint for
// it: the line itself, or, when the line closes a block, the closed block's
// accumulated content followed by the line.
//
// Each close delimiter recomputes the candidate from the then-current top of
// the stack, so on a line closing several blocks only the last close's
// computation survives; the intermediate levels are still popped. A line
// closing N levels thus reports the (N-1)-th enclosing level's content plus
// the line. This is kept deliberately, see DESIGN.md.
//
// A close with no matching open is ignored: no pop, no candidate update.
func (t *Tracker) Feed(line string) string {
	candidate := line
	for _, c := range line {
		switch c {
		case '{':
			t.scopes = append(t.scopes, "")
		case '}':
			if len(t.scopes) == 1 {
				continue
			}
			candidate = t.scopes[len(t.scopes)-1] + line
			t.scopes = t.scopes[:len(t.scopes)-1]
		}
	}
	// the finished candidate always feeds the enclosing scope, delimiters or not
	t.scopes[len(t.scopes)-1] += candidate
	return candidate
}
