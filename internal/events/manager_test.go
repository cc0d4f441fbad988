package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type pair struct {
	A int
	B string
}

type standardObserver struct {
	owner any
	calls int
}

func (o *standardObserver) OnEvent(owner any, _ struct{}) {
	o.owner = owner
	o.calls++
}

type customObserver struct {
	owner any
	a     int
	b     string
}

func (o *customObserver) MethodCustom(owner any) {
	o.owner = owner
}

func (o *customObserver) WithOwnerAndArgs(owner any, p pair) error {
	o.owner = owner
	o.a, o.b = p.A, p.B
	return nil
}

func (o *customObserver) WithArgs(p pair) error {
	o.a, o.b = p.A, p.B
	return nil
}

func TestManager_String(t *testing.T) {
	t.Run("self owned", func(t *testing.T) {
		assert.Equal(t, "<DispatchManager::on_event>", NewManager[struct{}]().String())
	})

	t.Run("custom event name", func(t *testing.T) {
		m := NewManager[struct{}](WithEventName("on_custom_event"))
		assert.Equal(t, "<DispatchManager::on_custom_event>", m.String())
	})

	t.Run("with owner", func(t *testing.T) {
		m := NewManager[struct{}](WithOwner("X"), WithEventName("on_pressed"))
		assert.Equal(t, "<DispatchManager for X::on_pressed>", m.String())
	})

	t.Run("nil owner is self owned", func(t *testing.T) {
		m := NewManager[struct{}](WithOwner(nil))
		assert.False(t, m.Bound())
		assert.Equal(t, "<DispatchManager::on_event>", m.String())
	})
}

func TestManager_EmitDefaultOwnerIsManager(t *testing.T) {
	m := NewManager[struct{}]()
	obs := &standardObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))
	require.NoError(t, m.Emit(struct{}{}))

	assert.Same(t, m, obs.owner)
	assert.Equal(t, 1, obs.calls)
}

func TestManager_EmitWithOwner(t *testing.T) {
	owner := "object that owns the event"
	m := NewManager[struct{}](WithOwner(owner))
	obs := &standardObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))
	require.NoError(t, m.Emit(struct{}{}))

	assert.Equal(t, owner, obs.owner)
}

func TestManager_EmitMultipleObservers(t *testing.T) {
	m := NewManager[struct{}]()
	std := &standardObserver{}
	cust := &customObserver{}

	require.NoError(t, m.RegisterMethod(std, ""))
	require.NoError(t, m.RegisterMethod(cust, "MethodCustom"))
	require.NoError(t, m.Emit(struct{}{}))

	assert.Same(t, m, std.owner)
	assert.Same(t, m, cust.owner)
}

func TestManager_EmitOncePerEmission(t *testing.T) {
	m := NewManager[int](WithOwner("host"))

	var got []int
	obs := &struct{ id int }{}
	require.NoError(t, m.Register(obs, func(owner any, v int) error {
		assert.Equal(t, "host", owner)
		got = append(got, v)
		return nil
	}))

	require.NoError(t, m.Emit(1))
	require.NoError(t, m.Emit(2))

	assert.Equal(t, []int{1, 2}, got)
}

func TestManager_RegisterTwice(t *testing.T) {
	m := NewManager[struct{}]()
	obs := &standardObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))

	err := m.RegisterMethod(obs, "")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	err = m.Register(obs, func(any, struct{}) error { return nil })
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	assert.Equal(t, 1, m.Len())
}

func TestManager_Deregister(t *testing.T) {
	m := NewManager[struct{}]()
	std := &standardObserver{}
	cust := &customObserver{}

	require.NoError(t, m.RegisterMethod(std, ""))
	require.NoError(t, m.RegisterMethod(cust, "MethodCustom"))
	require.NoError(t, m.Deregister(std))
	require.NoError(t, m.Emit(struct{}{}))

	assert.Nil(t, std.owner)
	assert.Same(t, m, cust.owner)
	assert.False(t, m.IsRegistered(std))
	assert.True(t, m.IsRegistered(cust))
}

func TestManager_DeregisterNotRegistered(t *testing.T) {
	m := NewManager[struct{}]()

	tests := []struct {
		name     string
		observer any
	}{
		{name: "unknown pointer", observer: &standardObserver{}},
		{name: "nil", observer: nil},
		{name: "not comparable", observer: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Deregister(tt.observer)
			assert.ErrorIs(t, err, ErrNotRegistered)
		})
	}
}

func TestManager_DeregisterTwice(t *testing.T) {
	m := NewManager[struct{}]()
	obs := &standardObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))
	require.NoError(t, m.Deregister(obs))
	assert.ErrorIs(t, m.Deregister(obs), ErrNotRegistered)
}

func TestManager_RegisterInvalid(t *testing.T) {
	m := NewManager[struct{}]()
	handler := func(any, struct{}) error { return nil }

	tests := []struct {
		name     string
		register func() error
	}{
		{
			name:     "nil observer",
			register: func() error { return m.Register(nil, handler) },
		},
		{
			name:     "not comparable observer",
			register: func() error { return m.Register(map[string]int{}, handler) },
		},
		{
			name:     "nil handler",
			register: func() error { return m.Register(&standardObserver{}, nil) },
		},
		{
			name:     "nil payload handler",
			register: func() error { return m.RegisterNoOwner(&standardObserver{}, nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.register(), ErrInvalidObserver)
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestManager_EmitParams(t *testing.T) {
	m := NewManager[pair]()
	obs := &customObserver{}

	require.NoError(t, m.RegisterMethod(obs, "WithOwnerAndArgs"))
	require.NoError(t, m.Emit(pair{A: 123, B: "a string"}))

	assert.Same(t, m, obs.owner)
	assert.Equal(t, 123, obs.a)
	assert.Equal(t, "a string", obs.b)
}

func TestManager_EmitNoOwnerParams(t *testing.T) {
	m := NewManager[pair](WithOwner("host"))
	obs := &customObserver{}

	require.NoError(t, m.RegisterMethod(obs, "WithArgs"))
	require.NoError(t, m.EmitNoOwner(pair{A: 123, B: "a string"}))

	assert.Nil(t, obs.owner)
	assert.Equal(t, 123, obs.a)
	assert.Equal(t, "a string", obs.b)
}

func TestManager_EmitFailFast(t *testing.T) {
	m := NewManager[int]()
	errBoom := errors.New("boom")

	calls := 0
	failing := func(any, int) error {
		calls++
		return errBoom
	}

	require.NoError(t, m.Register(&standardObserver{}, failing))
	require.NoError(t, m.Register(&customObserver{}, failing))

	err := m.Emit(1)
	assert.Same(t, errBoom, err)
	assert.Equal(t, 1, calls)
}

func TestManager_EmitNoOwnerFailFast(t *testing.T) {
	m := NewManager[int]()
	errBoom := errors.New("boom")

	calls := 0
	failing := func(int) error {
		calls++
		return errBoom
	}

	require.NoError(t, m.RegisterNoOwner(&standardObserver{}, failing))
	require.NoError(t, m.RegisterNoOwner(&customObserver{}, failing))

	assert.Same(t, errBoom, m.EmitNoOwner(1))
	assert.Equal(t, 1, calls)
}

func TestManager_EmitModeMismatch(t *testing.T) {
	m := NewManager[int]()

	require.NoError(t, m.RegisterNoOwner(&standardObserver{}, func(int) error { return nil }))
	assert.ErrorIs(t, m.Emit(1), ErrCallbackMismatch)

	m = NewManager[int]()
	require.NoError(t, m.Register(&standardObserver{}, func(any, int) error { return nil }))
	assert.ErrorIs(t, m.EmitNoOwner(1), ErrCallbackMismatch)
}

func TestManager_EmitWithoutObservers(t *testing.T) {
	m := NewManager[int]()
	assert.NoError(t, m.Emit(1))
	assert.NoError(t, m.EmitNoOwner(1))
}

func TestManager_PanicPropagates(t *testing.T) {
	m := NewManager[int]()
	require.NoError(t, m.Register(&standardObserver{}, func(any, int) error {
		panic("observer failed")
	}))

	assert.PanicsWithValue(t, "observer failed", func() {
		_ = m.Emit(1)
	})
}

func TestManager_ValueObserversCompareByValue(t *testing.T) {
	type key struct{ id int }
	m := NewManager[int]()
	h := func(any, int) error { return nil }

	require.NoError(t, m.Register(key{id: 1}, h))
	require.NoError(t, m.Register(key{id: 2}, h))
	assert.ErrorIs(t, m.Register(key{id: 1}, h), ErrAlreadyRegistered)
	assert.Equal(t, 2, m.Len())
}

func TestManager_WithLogger(t *testing.T) {
	m := NewManager[int](WithLogger(zaptest.NewLogger(t)), WithLogger(nil))
	obs := &standardObserver{}

	require.NoError(t, m.Register(obs, func(any, int) error { return nil }))
	require.NoError(t, m.Deregister(obs))
	assert.Equal(t, 0, m.Len())
}
