package events

import "go.uber.org/zap"

// DefaultEventName is used when a manager is created without a name.
const DefaultEventName = "on_event"

type settings struct {
	owner     any
	eventName string
	log       *zap.Logger
}

// Option configures a Manager.
type Option func(*settings)

// WithOwner sets the object passed to observers as the event originator.
// A nil owner leaves the manager self-owned.
func WithOwner(owner any) Option {
	return func(s *settings) {
		s.owner = owner
	}
}

// WithEventName sets the event name. It is also the default method name
// looked up by RegisterMethod.
func WithEventName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.eventName = name
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		eventName: DefaultEventName,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
