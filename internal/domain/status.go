package domain

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	// StatusCancelled is accepted when read back from the store; nothing transitions into it.
	StatusCancelled OrderStatus = "cancelled"
)

func ParseStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Next returns the only state reachable from s. Terminal states return themselves.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return s
	}
}

// Advance moves one step forward. The bool reports whether anything changed.
func Advance(current OrderStatus) (OrderStatus, bool) {
	next := current.Next()
	return next, next != current
}

// Transition validates a requested target against current. From a terminal
// state every request is a no-op.
func Transition(current, target OrderStatus) (OrderStatus, bool, error) {
	if current.Terminal() {
		return current, false, nil
	}
	if target != current.Next() {
		return current, false, ErrInvalidTransition
	}
	return target, true, nil
}
