package nav

// Outcome is the result of feeding a back signal through the synchronizer.
type Outcome struct {
	History History
	Screen  Screen
	// Exit means the signal was left to the platform, which closes the app.
	Exit bool
	// Intercepted means the default pop was overridden and duty was forced.
	Intercepted bool
}

// backExempt screens leave the hardware back signal to the platform.
func backExempt(s Screen) bool {
	switch s {
	case Login, Duty, Splash, Onboarding:
		return true
	}
	return false
}

// InterceptBack is the hardware back policy. From an interior screen the pop is
// prevented and a fresh duty record is pushed, whatever the depth of the log.
func InterceptBack(h History, current Screen) Outcome {
	if backExempt(current) {
		return Outcome{History: h, Screen: current, Exit: true}
	}
	return Outcome{History: h.Push(Duty), Screen: Duty, Intercepted: true}
}

// SoftBack is the back button drawn by screens themselves. It pops one real
// record and lets the platform deliver the pop, which the interception then
// turns into duty. With no back-stack (a deep-link start) duty replaces the top.
func SoftBack(h History, current Screen) Outcome {
	if backExempt(current) {
		return Outcome{History: h, Screen: current}
	}
	popped, ok := h.Back()
	if !ok {
		return Outcome{History: h.Replace(Duty), Screen: Duty, Intercepted: true}
	}
	return Outcome{History: popped.Push(Duty), Screen: Duty, Intercepted: true}
}

// Retreat pops one record back to the given screen, replacing the top when the
// log does not already hold it there.
func Retreat(h History, to Screen) Outcome {
	if popped, ok := h.Back(); ok {
		h = popped
	}
	if h.Top() != to {
		h = h.Replace(to)
	}
	return Outcome{History: h, Screen: to}
}

// Synchronizer owns the back-stack and keeps it aligned with the controller.
type Synchronizer struct {
	history History
}

func NewSynchronizer(initial Screen) *Synchronizer {
	return &Synchronizer{history: NewHistory(initial)}
}

func (s *Synchronizer) History() History { return s.history }
func (s *Synchronizer) Top() Screen      { return s.history.Top() }

// Forward records a forward navigation to screen.
func (s *Synchronizer) Forward(screen Screen) {
	s.history = s.history.Push(screen)
}

// Back handles the hardware back signal while current is rendered.
func (s *Synchronizer) Back(current Screen) Outcome {
	out := InterceptBack(s.history, current)
	s.history = out.History
	return out
}

// SoftBack handles a screen's own back button while current is rendered.
func (s *Synchronizer) SoftBack(current Screen) Outcome {
	out := SoftBack(s.history, current)
	s.history = out.History
	return out
}

// Retreat handles a non-forward move back to a known screen.
func (s *Synchronizer) Retreat(to Screen) Outcome {
	out := Retreat(s.history, to)
	s.history = out.History
	return out
}
