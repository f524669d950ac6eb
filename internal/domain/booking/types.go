package booking

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusReturned:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether a booking in this status can never change again.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

// CanTransitionTo enforces the monotone state machine:
// active may move to cancelled or returned, terminal states are final.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusActive {
		return false
	}
	return target == StatusCancelled || target == StatusReturned
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
