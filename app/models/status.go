package models

// Status is the order lifecycle state. Values are stored verbatim in the
// order documents, so the strings are part of the wire format.
type Status string

const (
	StatusReceived  Status = "Order Received"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready for Pickup"
	StatusPickedUp  Status = "Picked Up"
	StatusCanceled  Status = "Canceled"
)

// transitions maps each state to the set of states it may move to.
// Picked Up and Canceled are terminal.
var transitions = map[Status][]Status{
	StatusReceived:  {StatusPreparing, StatusCanceled},
	StatusPreparing: {StatusReady, StatusCanceled},
	StatusReady:     {StatusPickedUp, StatusCanceled},
	StatusPickedUp:  {},
	StatusCanceled:  {},
}

// Valid reports whether s is one of the five defined states.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether an order in state s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Statuses returns the defined states in lifecycle order.
func Statuses() []Status {
	return []Status{StatusReceived, StatusPreparing, StatusReady, StatusPickedUp, StatusCanceled}
}
