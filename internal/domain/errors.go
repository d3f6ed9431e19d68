package domain

import "errors"

var (
	// ErrProfileInvalid marks a malformed profile rejected before a
	// session starts.
	ErrProfileInvalid = errors.New("profile invalid")

	// ErrInvalidState is returned when a driver operation is called in a
	// state that does not permit it.
	ErrInvalidState = errors.New("invalid simulation state")

	// ErrUnknownEvent is returned when acknowledging or deciding an event
	// that is not in the pending queue.
	ErrUnknownEvent = errors.New("event not pending")

	// ErrDecisionRequired is returned when acknowledging an event that
	// carries a mandatory decision.
	ErrDecisionRequired = errors.New("event requires a decision")

	// ErrInvalidOption is returned when deciding with an option index the
	// event does not have.
	ErrInvalidOption = errors.New("invalid decision option")
)
