package otherevents

type Manager struct{}

func (m *Manager) Emit(v int) error { return nil }

type bus struct{}

func (b bus) Emit() {}

func unrelated(m *Manager, b bus) {
	m.Emit(1)
	b.Emit()
}
