package rau

import "fmt"

// State is a step of the update flow.
type State int

const (
	StateIdle State = iota
	StateOffline
	StateChecking
	StateResultInterpreted
	StateConfirming
	StateAwaitingPermission
	StateDownloading
	StateApplying
	StateRestarting
	StateRedirected
	StateFailed
	StateCancelled
)

var stateNames = map[State]string{
	StateIdle:               "idle",
	StateOffline:            "offline",
	StateChecking:           "checking",
	StateResultInterpreted:  "result-interpreted",
	StateConfirming:         "confirming",
	StateAwaitingPermission: "awaiting-permission",
	StateDownloading:        "downloading",
	StateApplying:           "applying",
	StateRestarting:         "restarting",
	StateRedirected:         "redirected",
	StateFailed:             "failed",
	StateCancelled:          "cancelled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the flow stops in s.
func (s State) Terminal() bool {
	switch s {
	case StateOffline, StateRestarting, StateRedirected, StateFailed, StateCancelled:
		return true
	}
	return false
}

// transitions lists the legal next states. Failed and Cancelled are reachable
// from every non-terminal state and are not repeated here.
var transitions = map[State][]State{
	StateIdle:               {StateOffline, StateChecking},
	StateChecking:           {StateResultInterpreted},
	StateResultInterpreted:  {StateConfirming, StateAwaitingPermission, StateDownloading, StateRedirected},
	StateConfirming:         {StateAwaitingPermission, StateDownloading, StateRedirected},
	StateAwaitingPermission: {StateDownloading, StateRedirected},
	StateDownloading:        {StateApplying},
	StateApplying:           {StateRestarting},
}

// CanTransition reports whether the flow may move from s to next.
// Restarting may still fail when the host cannot relaunch the process.
func (s State) CanTransition(next State) bool {
	if s == StateRestarting {
		return next == StateFailed
	}
	if s.Terminal() {
		return false
	}
	if next == StateFailed || next == StateCancelled {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Outcome is the result of one flow invocation.
type Outcome struct {
	State State
	Err   error
	Trace []State
}
