package contract

import "fmt"

// Transition is a sealed interface over the five transition kinds.
// Only Issue, Update, Transfer, Accumulate and Cancel implement it.
type Transition interface {
	transition() // Sealed - only these types implement it

	// Name is the lower-case wire name, e.g. "issue".
	Name() string
}

// Issue creates a new position.
type Issue struct{}

// Update changes the accumulated balance only.
type Update struct{}

// Transfer hands the position to a new bank and customer.
type Transfer struct{}

// Accumulate is reserved. See AccumulatePolicy.
type Accumulate struct{}

// Cancel terminates the position.
type Cancel struct{}

func (Issue) transition()      {}
func (Update) transition()     {}
func (Transfer) transition()   {}
func (Accumulate) transition() {}
func (Cancel) transition()     {}

func (Issue) Name() string      { return "issue" }
func (Update) Name() string     { return "update" }
func (Transfer) Name() string   { return "transfer" }
func (Accumulate) Name() string { return "accumulate" }
func (Cancel) Name() string     { return "cancel" }

// Transitions lists every kind in declaration order.
var Transitions = []Transition{Issue{}, Update{}, Transfer{}, Accumulate{}, Cancel{}}

// ParseTransition maps a wire name to its Transition.
func ParseTransition(name string) (Transition, error) {
	for _, t := range Transitions {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown transition %q: must be one of issue, update, transfer, accumulate, cancel", name)
}

// TransitionName returns t.Name(), or "none" for a nil transition.
func TransitionName(t Transition) string {
	if t == nil {
		return "none"
	}
	return t.Name()
}
