package workflow

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/catchup/internal/bus"
)

// State is one screen of the interactive workflow.
type State string

const (
	Splash  State = "SPLASH"
	Config  State = "CONFIG"
	Loading State = "LOADING"
	Summary State = "SUMMARY"
	Error   State = "ERROR"
)

// validTransitions defines allowed state transitions. Loading is reachable
// only from Config, and Config only after a prior run resolved, which is
// what keeps at most one background run in flight.
var validTransitions = map[State][]State{
	Splash:  {Config},
	Config:  {Loading, Error},
	Loading: {Summary, Error},
	Summary: {Config, Splash},
	Error:   {Config, Splash},
}

// Machine tracks and enforces workflow state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting on the splash screen.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Splash,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      "workflow.state_changed",
			Timestamp: time.Now(),
			Payload: StateChange{
				From: from,
				To:   to,
			},
		})
	}
	return nil
}

// StateChange is the payload for state change events.
type StateChange struct {
	From State
	To   State
}
