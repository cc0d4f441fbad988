package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pressedObserver struct {
	owner   any
	event   string
	bare    int
	lastErr error
}

func (o *pressedObserver) OnPressed(owner any, event string) error {
	o.owner = owner
	o.event = event
	return o.lastErr
}

func (o *pressedObserver) OnPlayPressed(event string) {
	o.event = "play:" + event
}

func (o *pressedObserver) Bare() {
	o.bare++
}

func (o *pressedObserver) TwoResults(any, string) (int, error) {
	return 0, nil
}

func (o *pressedObserver) Variadic(...string) {}

func (o *pressedObserver) OwnerOnly(owner *Manager[struct{}]) {
	o.owner = owner
}

func (o *pressedObserver) StrictOwner(owner *pressedObserver, _ string) {
	o.owner = owner
}

type exactNameObserver struct {
	calls int
}

func (o *exactNameObserver) Pressed(any, string) {
	o.calls++
}

func TestRegisterMethod_DefaultNameIsEventName(t *testing.T) {
	m := NewManager[string](WithOwner("button"), WithEventName("on_pressed"))
	obs := &pressedObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))
	require.NoError(t, m.Emit("print_timestamp"))

	assert.Equal(t, "button", obs.owner)
	assert.Equal(t, "print_timestamp", obs.event)
}

func TestRegisterMethod_ExactNameWins(t *testing.T) {
	m := NewManager[string](WithEventName("Pressed"))
	obs := &exactNameObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))
	require.NoError(t, m.Emit("x"))

	assert.Equal(t, 1, obs.calls)
}

func TestRegisterMethod_CustomName(t *testing.T) {
	m := NewManager[string](WithEventName("on_pressed"))
	obs := &pressedObserver{}

	require.NoError(t, m.RegisterMethod(obs, "on_play_pressed"))
	require.NoError(t, m.EmitNoOwner("stop"))

	assert.Equal(t, "play:stop", obs.event)
	assert.Nil(t, obs.owner)
}

func TestRegisterMethod_ReturnedErrorPropagates(t *testing.T) {
	errBoom := errors.New("boom")
	m := NewManager[string](WithEventName("on_pressed"))
	obs := &pressedObserver{lastErr: errBoom}

	require.NoError(t, m.RegisterMethod(obs, ""))
	assert.Same(t, errBoom, m.Emit("x"))
}

func TestRegisterMethod_EmptyPayloadShapes(t *testing.T) {
	t.Run("bare method serves both emits", func(t *testing.T) {
		m := NewManager[struct{}]()
		obs := &pressedObserver{}

		require.NoError(t, m.RegisterMethod(obs, "Bare"))
		require.NoError(t, m.Emit(struct{}{}))
		require.NoError(t, m.EmitNoOwner(struct{}{}))

		assert.Equal(t, 2, obs.bare)
	})

	t.Run("owner only method", func(t *testing.T) {
		m := NewManager[struct{}]()
		obs := &pressedObserver{}

		require.NoError(t, m.RegisterMethod(obs, "OwnerOnly"))
		require.NoError(t, m.Emit(struct{}{}))

		assert.Same(t, m, obs.owner)
		assert.ErrorIs(t, m.EmitNoOwner(struct{}{}), ErrCallbackMismatch)
	})
}

func TestRegisterMethod_OwnerTypeMismatch(t *testing.T) {
	m := NewManager[string](WithOwner("not an observer"))
	obs := &pressedObserver{}

	require.NoError(t, m.RegisterMethod(obs, "StrictOwner"))
	assert.ErrorIs(t, m.Emit("x"), ErrCallbackMismatch)
}

func TestRegisterMethod_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		observer   any
		methodName string
	}{
		{name: "method does not exist", observer: &pressedObserver{}, methodName: "method_that_not_exist"},
		{name: "default name missing", observer: &exactNameObserver{}, methodName: ""},
		{name: "unexported method", observer: &pressedObserver{}, methodName: "lastErr"},
		{name: "two results", observer: &pressedObserver{}, methodName: "TwoResults"},
		{name: "variadic", observer: &pressedObserver{}, methodName: "Variadic"},
		{name: "payload type mismatch", observer: &pressedObserver{}, methodName: "Bare"},
		{name: "nil observer", observer: nil, methodName: "OnPressed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager[int](WithEventName("on_pressed"))

			err := m.RegisterMethod(tt.observer, tt.methodName)
			assert.ErrorIs(t, err, ErrInvalidObserver)
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestRegisterMethod_InvalidBeforeDuplicate(t *testing.T) {
	m := NewManager[string](WithEventName("on_pressed"))
	obs := &pressedObserver{}

	require.NoError(t, m.RegisterMethod(obs, ""))

	assert.ErrorIs(t, m.RegisterMethod(obs, "missing"), ErrInvalidObserver)
	assert.ErrorIs(t, m.RegisterMethod(obs, ""), ErrAlreadyRegistered)
	assert.Equal(t, 1, m.Len())
}

type idObserver struct{}

func (o *idObserver) OnId(owner any, _ int) {}

func TestRegisterMethod_MissNamesBothKeys(t *testing.T) {
	m := NewManager[int](WithEventName("on_id"))

	err := m.RegisterMethod(&idObserver{}, "")
	require.ErrorIs(t, err, ErrInvalidObserver)
	assert.Contains(t, err.Error(), `"on_id" or "OnID"`)

	err = m.RegisterMethod(&idObserver{}, "OnMissing")
	require.ErrorIs(t, err, ErrInvalidObserver)
	assert.Contains(t, err.Error(), `the method "OnMissing"`)
	assert.NotContains(t, err.Error(), " or ")

	require.NoError(t, m.RegisterMethod(&idObserver{}, "OnId"))
}
