package node

import (
	"sync/atomic"
)

// State captures the state of a citizen node: Running or Terminating.
type State uint32

const (
	//Running is the initial state: the scheduler is iterating the roster.
	Running State = iota
	//Terminating is the terminal state: the node emits a final summary and
	//exits. There are no further transitions.
	Terminating
)

// String ...
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Terminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}

type state struct {
	state State
}

func (b *state) getState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

func (b *state) setState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}
