package events

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/serenize/snaker"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// RegisterMethod registers observer by looking up one of its methods.
// An empty methodName means the event name. The name is used as is; when
// the observer has no such method the exported CamelCase form of a
// snake_case name is tried, so "on_pressed" also finds OnPressed.
//
// Supported method shapes, each returning nothing or an error:
//
//	func(owner T, payload P)  called by Emit
//	func(payload P)           called by EmitNoOwner
//	func(owner T)             called by Emit, P must be struct{} and T
//	                          must not be struct{}
//	func()                    called by both, P must be struct{}
func (m *Manager[P]) RegisterMethod(observer any, methodName string) error {
	if err := checkObserver(observer); err != nil {
		return err
	}

	if methodName == "" {
		methodName = m.eventName
	}

	method, ok := lookupMethod(reflect.ValueOf(observer), methodName)
	if !ok {
		if camel := snaker.SnakeToCamel(methodName); camel != methodName {
			return fmt.Errorf("%w: %T must have the method %q or %q", ErrInvalidObserver, observer, methodName, camel)
		}
		return fmt.Errorf("%w: %T must have the method %q", ErrInvalidObserver, observer, methodName)
	}

	b, err := bindMethod[P](method)
	if err != nil {
		return fmt.Errorf("%w: %T.%s: %v", ErrInvalidObserver, observer, methodName, err)
	}

	return m.add(observer, b)
}

func lookupMethod(v reflect.Value, name string) (reflect.Value, bool) {
	if method := v.MethodByName(name); method.IsValid() {
		return method, true
	}

	if camel := snaker.SnakeToCamel(name); camel != name {
		if method := v.MethodByName(camel); method.IsValid() {
			return method, true
		}
	}

	return reflect.Value{}, false
}

func bindMethod[P any](method reflect.Value) (binding[P], error) {
	t := method.Type()
	if t.IsVariadic() {
		return binding[P]{}, errors.New("variadic methods are not supported")
	}
	if t.NumOut() > 1 || (t.NumOut() == 1 && t.Out(0) != errorType) {
		return binding[P]{}, fmt.Errorf("method %s must return nothing or an error", t)
	}

	payloadType := reflect.TypeOf((*P)(nil)).Elem()
	empty := payloadType.Kind() == reflect.Struct && payloadType.NumField() == 0

	switch {
	case t.NumIn() == 2 && payloadType.AssignableTo(t.In(1)):
		ownerType := t.In(0)
		return binding[P]{
			withOwner: func(owner any, payload P) error {
				ov, err := ownerValue(owner, ownerType)
				if err != nil {
					return err
				}
				return call(method, ov, payloadValue(&payload))
			},
		}, nil

	case t.NumIn() == 1 && empty && t.In(0) != payloadType:
		ownerType := t.In(0)
		return binding[P]{
			withOwner: func(owner any, _ P) error {
				ov, err := ownerValue(owner, ownerType)
				if err != nil {
					return err
				}
				return call(method, ov)
			},
		}, nil

	case t.NumIn() == 1 && payloadType.AssignableTo(t.In(0)):
		return binding[P]{
			noOwner: func(payload P) error {
				return call(method, payloadValue(&payload))
			},
		}, nil

	case t.NumIn() == 0 && empty:
		return binding[P]{
			withOwner: func(any, P) error { return call(method) },
			noOwner:   func(P) error { return call(method) },
		}, nil
	}

	return binding[P]{}, fmt.Errorf("method %s does not accept payload %s", t, payloadType)
}

func ownerValue(owner any, t reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(owner)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: owner %T is not assignable to %s", ErrCallbackMismatch, owner, t)
	}
	return v, nil
}

// payloadValue keeps the static type of P, which matters when P is an
// interface holding nil.
func payloadValue[P any](payload *P) reflect.Value {
	return reflect.ValueOf(payload).Elem()
}

func call(method reflect.Value, args ...reflect.Value) error {
	out := method.Call(args)
	if len(out) == 0 || out[0].IsNil() {
		return nil
	}
	return out[0].Interface().(error)
}
