package nav

// History is the platform back-stack as a log of screen tags with an explicit
// top pointer. Records above top are forward entries; a push discards them.
// Values are immutable: every operation returns a new History.
type History struct {
	entries []Screen
	top     int
}

// NewHistory starts a log holding the screen the process opened on.
func NewHistory(initial Screen) History {
	return History{entries: []Screen{initial}, top: 0}
}

// Top is the record the platform considers current.
func (h History) Top() Screen {
	if len(h.entries) == 0 {
		return Splash
	}
	return h.entries[h.top]
}

// Depth counts the records reachable by going back, including the top.
func (h History) Depth() int { return h.top + 1 }

// CanGoBack reports whether a real record exists below the top.
func (h History) CanGoBack() bool { return h.top > 0 }

// Entries returns the records up to and including the top, oldest first.
func (h History) Entries() []Screen {
	if len(h.entries) == 0 {
		return nil
	}
	out := make([]Screen, h.top+1)
	copy(out, h.entries[:h.top+1])
	return out
}

func (h History) Push(s Screen) History {
	if len(h.entries) == 0 {
		return NewHistory(s)
	}
	next := make([]Screen, h.top+1, h.top+2)
	copy(next, h.entries[:h.top+1])
	next = append(next, s)
	return History{entries: next, top: len(next) - 1}
}

// Back moves the top pointer down one record. ok is false at the bottom of the log.
func (h History) Back() (History, bool) {
	if !h.CanGoBack() {
		return h, false
	}
	return History{entries: h.entries, top: h.top - 1}, true
}

// Replace swaps the top record in place.
func (h History) Replace(s Screen) History {
	if len(h.entries) == 0 {
		return NewHistory(s)
	}
	next := make([]Screen, h.top+1)
	copy(next, h.entries[:h.top+1])
	next[h.top] = s
	return History{entries: next, top: h.top}
}
