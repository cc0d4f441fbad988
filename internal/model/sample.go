package model

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Sample is a set of gauges read from one provider.
type Sample map[string]float64

// SampleEvent is the payload of the sampler's on_sample event.
type SampleEvent struct {
	Timestamp time.Time `json:"-"`
	Ts        int64     `json:"ts"` // unix milliseconds
	Source    string    `json:"source"`
	PollCount int64     `json:"poll_count"`
	Gauges    Sample    `json:"gauges"`
}

func NewSampleEvent(source string, at time.Time, pollCount int64, gauges Sample) SampleEvent {
	return SampleEvent{
		Timestamp: at,
		Ts:        at.UnixMilli(),
		Source:    source,
		PollCount: pollCount,
		Gauges:    gauges,
	}
}

// Names returns the gauge names in sorted order.
func (e SampleEvent) Names() []string {
	return slices.Sorted(maps.Keys(e.Gauges))
}

// Clone returns a copy that does not share the gauges map.
func (e SampleEvent) Clone() SampleEvent {
	clone := e
	clone.Gauges = maps.Clone(e.Gauges)
	return clone
}

func (e SampleEvent) String() string {
	return fmt.Sprintf("SampleEvent{Source: %s, PollCount: %d, Gauges: %d}", e.Source, e.PollCount, len(e.Gauges))
}

// StopEvent is the payload of the sampler's on_stop event.
type StopEvent struct {
	Timestamp time.Time `json:"-"`
	Ts        int64     `json:"ts"`
	Source    string    `json:"source"`
	PollCount int64     `json:"poll_count"`
	Reason    string    `json:"reason"`
}

func NewStopEvent(source string, at time.Time, pollCount int64, reason string) StopEvent {
	return StopEvent{
		Timestamp: at,
		Ts:        at.UnixMilli(),
		Source:    source,
		PollCount: pollCount,
		Reason:    reason,
	}
}
