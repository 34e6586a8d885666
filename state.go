package eraser

// State is the lifecycle stage of the widget.
type State uint8

const (
	// Loading is the initial state, the image is being fetched.
	Loading State = iota
	// Interactive means the image is rendered and follows the pointer.
	Interactive
	// Fading is entered once, when the erased threshold is crossed.
	Fading
	// Hidden is the terminal state reached after the fade out completes.
	Hidden
	// LoadFailed is the terminal state reached when the image could not be loaded.
	LoadFailed
)

var transitions = map[State][]State{
	Loading:     {Interactive, LoadFailed},
	Interactive: {Fading},
	Fading:      {Hidden},
}

// can reports whether the widget may move from s to the next state.
func (s State) can(next State) bool {
	for _, st := range transitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves the state.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Interactive:
		return "interactive"
	case Fading:
		return "fading"
	case Hidden:
		return "hidden"
	case LoadFailed:
		return "load failed"
	}
	return "unknown"
}
