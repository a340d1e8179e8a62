package bus

import "time"

// Event is one item of bus traffic. Kind is a dotted name the workflow
// machine and controller publish under ("workflow.state_changed",
// "run.dispatched", "run.resolved"); subscribers filter on a prefix of it.
// Payload carries the kind-specific value, such as a state change or run id.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
