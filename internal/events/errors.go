package events

import "errors"

var (
	// ErrInvalidObserver is returned when an observer cannot be registered:
	// it is nil, not comparable, or lacks a usable callback.
	ErrInvalidObserver = errors.New("invalid observer")

	ErrAlreadyRegistered = errors.New("observer already registered")
	ErrNotRegistered     = errors.New("observer not registered")

	// ErrUnboundOwner is returned by owner-only operations on a manager
	// that has no explicit owner.
	ErrUnboundOwner = errors.New("event has no owner")

	// ErrCallbackMismatch is returned by Emit or EmitNoOwner when a
	// registered callback cannot be called in that mode.
	ErrCallbackMismatch = errors.New("callback does not match emit mode")

	ErrDuplicateEvent = errors.New("event already exists")
)
