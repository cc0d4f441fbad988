package events

import "fmt"

// Event is a typed slot for one event of a host of type O. A host keeps it
// as a field, binds itself once and forwards its own register, deregister
// and emit methods to it.
//
//	type Button struct {
//		onPressed *events.Event[*Button, string]
//	}
//
//	func NewButton() *Button {
//		b := &Button{onPressed: events.NewEvent[*Button, string]("on_pressed")}
//		b.onPressed.Bind(b)
//		return b
//	}
type Event[O any, P any] struct {
	mgr *Manager[P]
}

// NewEvent returns an unbound event slot named name.
func NewEvent[O any, P any](name string, opts ...Option) *Event[O, P] {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithEventName(name))

	return &Event[O, P]{mgr: NewManager[P](all...)}
}

// Bind sets the owner passed to observers. It may be called again to
// rebind the slot to another owner.
func (e *Event[O, P]) Bind(owner O) *Event[O, P] {
	e.mgr.bind(owner)
	return e
}

// Owner returns the bound owner and whether there is one.
func (e *Event[O, P]) Owner() (O, bool) {
	o, ok := e.mgr.owner.(O)
	return o, ok && e.mgr.bound
}

func (e *Event[O, P]) Register(observer any, fn func(owner O, payload P) error) error {
	if fn == nil {
		return fmt.Errorf("%w: nil handler for %T", ErrInvalidObserver, observer)
	}

	return e.mgr.Register(observer, func(owner any, payload P) error {
		o, ok := owner.(O)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnboundOwner, e.mgr)
		}
		return fn(o, payload)
	})
}

func (e *Event[O, P]) RegisterNoOwner(observer any, fn func(payload P) error) error {
	return e.mgr.RegisterNoOwner(observer, fn)
}

func (e *Event[O, P]) RegisterMethod(observer any, methodName string) error {
	return e.mgr.RegisterMethod(observer, methodName)
}

func (e *Event[O, P]) Deregister(observer any) error {
	return e.mgr.Deregister(observer)
}

// Emit calls every observer with the bound owner. An unbound slot fails
// with ErrUnboundOwner before any observer is called.
func (e *Event[O, P]) Emit(payload P) error {
	if !e.mgr.bound {
		return fmt.Errorf("%w: %s", ErrUnboundOwner, e.mgr)
	}
	return e.mgr.Emit(payload)
}

func (e *Event[O, P]) EmitNoOwner(payload P) error {
	return e.mgr.EmitNoOwner(payload)
}

func (e *Event[O, P]) IsRegistered(observer any) bool {
	return e.mgr.IsRegistered(observer)
}

func (e *Event[O, P]) EventName() string { return e.mgr.EventName() }
func (e *Event[O, P]) Len() int          { return e.mgr.Len() }
func (e *Event[O, P]) String() string    { return e.mgr.String() }

// Manager returns the underlying manager.
func (e *Event[O, P]) Manager() *Manager[P] {
	return e.mgr
}
