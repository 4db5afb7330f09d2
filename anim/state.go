package anim

// State is the position of one pool slot in the fade cycle.
//
//	Pre2 -> Pre1 -> Pre0 -> Visible1 -> Visible2 -> PostInvisible -> Pre0
type State uint8

// Slot states.
const (
	StatePre2 State = iota
	StatePre1
	StatePre0
	StateVisible1
	StateVisible2
	StatePostInvisible
)

var stateNames = [...]string{
	StatePre2:          "Pre2",
	StatePre1:          "Pre1",
	StatePre0:          "Pre0",
	StateVisible1:      "Visible1",
	StateVisible2:      "Visible2",
	StatePostInvisible: "PostInvisible",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

// Visible reports whether a slot in this state is shown.
func (s State) Visible() bool {
	return s == StateVisible1 || s == StateVisible2
}

// Next returns the following state. PostInvisible recycles to Pre0.
func (s State) Next() State {
	switch s {
	case StatePre2:
		return StatePre1
	case StatePre1:
		return StatePre0
	case StatePre0:
		return StateVisible1
	case StateVisible1:
		return StateVisible2
	case StateVisible2:
		return StatePostInvisible
	default:
		return StatePre0
	}
}
