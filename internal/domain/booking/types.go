package booking

import "fmt"

// Status is the persisted lifecycle state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// State is the derived retrieval bucket. Unlike Status it is never stored:
// CURRENT/FUTURE/PAST membership is a function of "now" and is recomputed
// on every query.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StateFuture   State = "FUTURE"
	StatePast     State = "PAST"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func (s State) String() string {
	return string(s)
}

// ParseState validates a bucket token once at the boundary. Matching is
// exact and case-sensitive.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateAll, StateCurrent, StateFuture, StatePast, StateWaiting, StateRejected:
		return State(raw), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownState, raw)
	}
}
