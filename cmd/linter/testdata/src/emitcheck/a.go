package emitcheck

import "events"

type owner struct{}

func checked(m *events.Manager[int], e *events.Event[*owner, string]) error {
	if err := m.Emit(1); err != nil {
		return err
	}
	_ = m.EmitNoOwner(2)
	return e.Emit("ok")
}

func discarded(m *events.Manager[int], e *events.Event[*owner, string]) {
	m.Emit(1)                // want `error returned by events.Manager.Emit is not checked`
	m.EmitNoOwner(2)         // want `error returned by events.Manager.EmitNoOwner is not checked`
	e.Emit("x")              // want `error returned by events.Event.Emit is not checked`
	defer e.EmitNoOwner("y") // want `error returned by events.Event.EmitNoOwner is not checked`
	go m.Emit(3)             // want `error returned by events.Manager.Emit is not checked`
}

func byValue(m events.Manager[int]) {
	m.Emit(4) // want `error returned by events.Manager.Emit is not checked`
}
