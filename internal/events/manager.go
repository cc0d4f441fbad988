// Package events implements a per-event observer registry.
//
// A host creates one Manager per event it exposes, usually as a field,
// and forwards register, deregister and emit calls to it. Observers supply
// a callback that is invoked synchronously on every emission.
//
// A Manager is not safe for concurrent use. Registering or deregistering
// observers from inside a callback while an emission is in progress is not
// allowed.
package events

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Handler is a callback that receives the event owner followed by the payload.
type Handler[P any] func(owner any, payload P) error

// PayloadHandler is a callback that receives only the payload.
type PayloadHandler[P any] func(payload P) error

type binding[P any] struct {
	withOwner Handler[P]
	noOwner   PayloadHandler[P]
}

// Manager dispatches one named event carrying a payload of type P.
type Manager[P any] struct {
	owner     any
	bound     bool
	eventName string
	observers map[any]binding[P]
	log       *zap.Logger
}

func NewManager[P any](opts ...Option) *Manager[P] {
	s := newSettings(opts)

	m := &Manager[P]{
		eventName: s.eventName,
		observers: make(map[any]binding[P]),
		log:       s.log,
	}
	m.bind(s.owner)

	return m
}

func (m *Manager[P]) bind(owner any) {
	m.owner = owner
	m.bound = owner != nil
}

// EventName returns the name the manager was created with.
func (m *Manager[P]) EventName() string {
	return m.eventName
}

// Owner returns the explicit owner, or the manager itself when none was set.
func (m *Manager[P]) Owner() any {
	if !m.bound {
		return m
	}
	return m.owner
}

// Bound reports whether the manager has an explicit owner.
func (m *Manager[P]) Bound() bool {
	return m.bound
}

// Len returns the number of registered observers.
func (m *Manager[P]) Len() int {
	return len(m.observers)
}

func (m *Manager[P]) IsRegistered(observer any) bool {
	if !isComparable(observer) {
		return false
	}
	_, ok := m.observers[observer]
	return ok
}

// Register adds observer with a callback that receives the owner and the
// payload on Emit.
func (m *Manager[P]) Register(observer any, h Handler[P]) error {
	if h == nil {
		return fmt.Errorf("%w: nil handler for %T", ErrInvalidObserver, observer)
	}
	return m.add(observer, binding[P]{withOwner: h})
}

// RegisterNoOwner adds observer with a callback that receives only the
// payload on EmitNoOwner.
func (m *Manager[P]) RegisterNoOwner(observer any, h PayloadHandler[P]) error {
	if h == nil {
		return fmt.Errorf("%w: nil handler for %T", ErrInvalidObserver, observer)
	}
	return m.add(observer, binding[P]{noOwner: h})
}

func (m *Manager[P]) add(observer any, b binding[P]) error {
	if err := checkObserver(observer); err != nil {
		return err
	}

	if _, ok := m.observers[observer]; ok {
		return fmt.Errorf("%w: %T to %s", ErrAlreadyRegistered, observer, m)
	}

	m.observers[observer] = b
	m.log.Debug("observer registered",
		zap.String("event", m.eventName),
		zap.String("observer", fmt.Sprintf("%T", observer)),
		zap.Int("observers", len(m.observers)),
	)

	return nil
}

// Deregister removes observer. It fails with ErrNotRegistered if the
// observer has no registration.
func (m *Manager[P]) Deregister(observer any) error {
	if !m.IsRegistered(observer) {
		return fmt.Errorf("%w: %T from %s", ErrNotRegistered, observer, m)
	}

	delete(m.observers, observer)
	m.log.Debug("observer deregistered",
		zap.String("event", m.eventName),
		zap.String("observer", fmt.Sprintf("%T", observer)),
		zap.Int("observers", len(m.observers)),
	)

	return nil
}

// Emit calls every registered callback with the owner and payload.
// The first callback error is returned unchanged and the remaining
// observers are skipped.
func (m *Manager[P]) Emit(payload P) error {
	owner := m.Owner()
	for observer, b := range m.observers {
		if b.withOwner == nil {
			return fmt.Errorf("%w: %T expects no owner on %s", ErrCallbackMismatch, observer, m)
		}
		if err := b.withOwner(owner, payload); err != nil {
			return err
		}
	}
	return nil
}

// EmitNoOwner is like Emit but callbacks receive only the payload.
func (m *Manager[P]) EmitNoOwner(payload P) error {
	for observer, b := range m.observers {
		if b.noOwner == nil {
			return fmt.Errorf("%w: %T expects an owner on %s", ErrCallbackMismatch, observer, m)
		}
		if err := b.noOwner(payload); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager[P]) String() string {
	if !m.bound {
		return fmt.Sprintf("<DispatchManager::%s>", m.eventName)
	}
	return fmt.Sprintf("<DispatchManager for %v::%s>", m.owner, m.eventName)
}

func checkObserver(observer any) error {
	if observer == nil {
		return fmt.Errorf("%w: nil observer", ErrInvalidObserver)
	}
	if !isComparable(observer) {
		return fmt.Errorf("%w: %T is not comparable", ErrInvalidObserver, observer)
	}
	return nil
}

func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}
