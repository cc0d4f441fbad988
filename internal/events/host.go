package events

import (
	"fmt"
	"slices"
	"strings"

	"github.com/serenize/snaker"
)

// Dispatcher is the read-only view of an event that a Host lists.
type Dispatcher interface {
	EventName() string
	Len() int
	String() string
}

// EventInfo describes one event of a host.
type EventInfo struct {
	Name      string `json:"name"`
	Observers int    `json:"observers"`
	Manager   string `json:"manager"`
}

// Host groups the events exposed by one hosting object.
type Host struct {
	name   string
	events map[string]Dispatcher
}

func NewHost(name string) *Host {
	return &Host{
		name:   name,
		events: make(map[string]Dispatcher),
	}
}

func (h *Host) Name() string {
	return h.name
}

// Add attaches d under its event name.
func (h *Host) Add(d Dispatcher) error {
	name := d.EventName()
	if _, ok := h.events[name]; ok {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateEvent, name, h.name)
	}
	h.events[name] = d
	return nil
}

func (h *Host) Lookup(name string) (Dispatcher, bool) {
	d, ok := h.events[name]
	return d, ok
}

// Events returns the host events sorted by name.
func (h *Host) Events() []EventInfo {
	infos := make([]EventInfo, 0, len(h.events))
	for name, d := range h.events {
		infos = append(infos, EventInfo{
			Name:      name,
			Observers: d.Len(),
			Manager:   d.String(),
		})
	}

	slices.SortFunc(infos, func(a, b EventInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	return infos
}

func (h *Host) String() string {
	names := make([]string, 0, len(h.events))
	for _, info := range h.Events() {
		names = append(names, info.Name)
	}
	return fmt.Sprintf("<Host %s: %s>", h.name, strings.Join(names, ", "))
}

// EventName derives an event name from the name of an emitter method:
// "EmitOnStart" and "emit_on_start" both give "on_start".
func EventName(emitterName string) string {
	name := snaker.CamelToSnake(emitterName)
	name = strings.ReplaceAll(name, "emit", "")
	return strings.Trim(name, " -_")
}
