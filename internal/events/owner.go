package events

import "fmt"

// OwnerMethods holds forwarding entry points an owner can expose for one
// event, together with their conventional names.
type OwnerMethods[P any] struct {
	RegisterName   string
	DeregisterName string
	EmitName       string

	Register       func(observer any, h Handler[P]) error
	RegisterMethod func(observer any, methodName string) error
	Deregister     func(observer any) error
	Emit           func(payload P) error
}

// RegisterOwnerMethods returns the register, deregister and emit entry
// points of m for its owner. A self-owned manager has nobody to expose
// them and fails with ErrUnboundOwner.
func (m *Manager[P]) RegisterOwnerMethods() (*OwnerMethods[P], error) {
	if !m.bound {
		return nil, fmt.Errorf("%w: can't register methods of %s", ErrUnboundOwner, m)
	}

	return &OwnerMethods[P]{
		RegisterName:   "register_" + m.eventName,
		DeregisterName: "deregister_" + m.eventName,
		EmitName:       "_emit_" + m.eventName,
		Register:       m.Register,
		RegisterMethod: m.RegisterMethod,
		Deregister:     m.Deregister,
		Emit:           m.Emit,
	}, nil
}
