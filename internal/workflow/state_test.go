package workflow

import (
	"testing"

	"github.com/matheus3301/catchup/internal/bus"
)

func TestInitialState(t *testing.T) {
	m := NewMachine(nil)
	if m.Current() != Splash {
		t.Errorf("initial state = %s, want SPLASH", m.Current())
	}
}

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Splash, Config},
		{Config, Loading},
		{Config, Error},
		{Loading, Summary},
		{Loading, Error},
		{Summary, Config},
		{Summary, Splash},
		{Error, Config},
		{Error, Splash},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine(nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to); err != nil {
				t.Errorf("Transition(%s -> %s) error = %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("state = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	m := NewMachine(nil)
	if err := m.Transition(Summary); err == nil {
		t.Error("Transition(SPLASH -> SUMMARY) should fail")
	}
}

// TestLoadingOnlyReachableFromConfig pins the single-worker invariant: a
// second Generate cannot start while one is outstanding because Loading
// cannot transition into itself.
func TestLoadingOnlyReachableFromConfig(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Loading)

	if err := m.Transition(Loading); err == nil {
		t.Fatal("Transition(LOADING -> LOADING) should fail")
	}
	if m.Current() != Loading {
		t.Errorf("state = %s, want LOADING (should not have changed)", m.Current())
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("workflow.", 10)
	defer unsub()

	m := NewMachine(b)
	if err := m.Transition(Config); err != nil {
		t.Fatal(err)
	}

	evt := <-ch
	if evt.Kind != "workflow.state_changed" {
		t.Errorf("event kind = %q, want workflow.state_changed", evt.Kind)
	}
	change, ok := evt.Payload.(StateChange)
	if !ok {
		t.Fatalf("payload type = %T, want StateChange", evt.Payload)
	}
	if change.From != Splash || change.To != Config {
		t.Errorf("change = %v -> %v, want SPLASH -> CONFIG", change.From, change.To)
	}
}

// TestFullRunLifecycle simulates a complete successful run:
// SPLASH → CONFIG → LOADING → SUMMARY → CONFIG (retry) → LOADING → ERROR → SPLASH
func TestFullRunLifecycle(t *testing.T) {
	m := NewMachine(nil)

	steps := []State{Config, Loading, Summary, Config, Loading, Error, Splash}
	for _, s := range steps {
		if err := m.Transition(s); err != nil {
			t.Fatalf("Transition to %s: %v (current: %s)", s, err, m.Current())
		}
	}
	if m.Current() != Splash {
		t.Errorf("final state = %s, want SPLASH", m.Current())
	}
}

// walkTo is a helper that transitions the machine to a target state.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	paths := map[State][]State{
		Splash:  {},
		Config:  {Config},
		Loading: {Config, Loading},
		Summary: {Config, Loading, Summary},
		Error:   {Config, Error},
	}
	for _, s := range paths[target] {
		if err := m.Transition(s); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
}
