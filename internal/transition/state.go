package transition

// State is the overlay's visual state.
type State int

const (
	Opening State = iota
	Collapsed
	Expanding
	Expanded
	Collapsing
)

var stateNames = [...]string{
	Opening:    "opening",
	Collapsed:  "collapsed",
	Expanding:  "expanding",
	Expanded:   "expanded",
	Collapsing: "collapsing",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// IsAnimating reports whether a transition is in flight. Expand and collapse
// requests are rejected while this holds.
func (s State) IsAnimating() bool {
	return s == Opening || s == Expanding || s == Collapsing
}

// IsExpanded reports whether the overlay is expanded or heading there.
func (s State) IsExpanded() bool {
	return s == Expanding || s == Expanded
}

type event int

const (
	eventOpened event = iota
	eventExpand
	eventExpanded
	eventCollapse
	eventCollapsed
)

func (e event) String() string {
	switch e {
	case eventOpened:
		return "opened"
	case eventExpand:
		return "expand"
	case eventExpanded:
		return "expanded"
	case eventCollapse:
		return "collapse"
	case eventCollapsed:
		return "collapsed"
	}
	return "unknown"
}

// transitions is the complete state machine. Any pair not listed is
// rejected.
var transitions = map[State]map[event]State{
	Opening:    {eventOpened: Collapsed},
	Collapsed:  {eventExpand: Expanding},
	Expanding:  {eventExpanded: Expanded},
	Expanded:   {eventCollapse: Collapsing},
	Collapsing: {eventCollapsed: Collapsed},
}
