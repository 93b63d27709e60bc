// Package uistate models the login screen's ceremony lifecycle as an
// explicit finite-state machine. Transitions fire only on events; the timed
// revert from a terminal state back to Idle belongs to the caller, which
// owns the timer and delivers TimerElapsed when it fires.
package uistate

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// RevertDelay is how long a terminal state is shown before the caller
// should deliver TimerElapsed.
const RevertDelay = 3 * time.Second

// State is a login screen state.
type State uint8

const (
	// Idle awaits a ceremony.
	Idle State = iota
	// Scanning shows the biometric prompt.
	Scanning
	// Success shows a completed ceremony until the revert timer fires.
	Success
	// Error shows a failed ceremony until the revert timer fires.
	Error
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Event drives a transition.
type Event interface {
	isEvent()
}

// CeremonyStarted moves Idle to Scanning.
type CeremonyStarted struct{}

// CeremonySucceeded moves Scanning to Success.
type CeremonySucceeded struct{}

// CeremonyFailed moves Scanning to Error and records the failure message.
type CeremonyFailed struct {
	Message string
}

// TimerElapsed moves a terminal state back to Idle.
type TimerElapsed struct{}

func (CeremonyStarted) isEvent()   {}
func (CeremonySucceeded) isEvent() {}
func (CeremonyFailed) isEvent()    {}
func (TimerElapsed) isEvent()      {}

// ErrInvalidTransition is returned when an event is not legal in the
// current state.
var ErrInvalidTransition = errors.New("uistate: invalid transition")

// Machine is the login screen state machine. The zero value is not usable;
// create one with New.
type Machine struct {
	mu      sync.Mutex
	state   State
	message string
}

// New returns a machine in the Idle state.
func New() *Machine {
	return &Machine{state: Idle}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Message returns the failure message recorded by the last CeremonyFailed
// event, or the empty string outside the Error state.
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

// Apply delivers an event. Illegal transitions leave the machine unchanged
// and return an error wrapping ErrInvalidTransition.
func (m *Machine) Apply(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev := event.(type) {
	case CeremonyStarted:
		if m.state != Idle {
			return m.invalid(event)
		}
		m.state = Scanning
	case CeremonySucceeded:
		if m.state != Scanning {
			return m.invalid(event)
		}
		m.state = Success
	case CeremonyFailed:
		if m.state != Scanning {
			return m.invalid(event)
		}
		m.state = Error
		m.message = ev.Message
	case TimerElapsed:
		if m.state != Success && m.state != Error {
			return m.invalid(event)
		}
		m.state = Idle
		m.message = ""
	default:
		return fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, event)
	}
	return nil
}

func (m *Machine) invalid(event Event) error {
	return fmt.Errorf("%w: %T in state %s", ErrInvalidTransition, event, m.state)
}
