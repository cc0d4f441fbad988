package events

type Manager[P any] struct{}

func (m *Manager[P]) Emit(payload P) error        { return nil }
func (m *Manager[P]) EmitNoOwner(payload P) error { return nil }

type Event[O, P any] struct{}

func (e *Event[O, P]) Emit(payload P) error        { return nil }
func (e *Event[O, P]) EmitNoOwner(payload P) error { return nil }
