package bootstrap

// State is a step of a bootstrap run.
type State int

const (
	StateIdle State = iota
	StateFetchingThemes
	StatePrompting
	StatePreparing
	StateInstalling
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:           "idle",
	StateFetchingThemes: "fetching themes",
	StatePrompting:      "prompting",
	StatePreparing:      "preparing",
	StateInstalling:     "installing",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// next lists the legal successors of each state. Any non-terminal state may
// also move to StateFailed.
var next = map[State]State{
	StateIdle:           StateFetchingThemes,
	StateFetchingThemes: StatePrompting,
	StatePrompting:      StatePreparing,
	StatePreparing:      StateInstalling,
	StateInstalling:     StateDone,
}

func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	return next[from] == to
}
