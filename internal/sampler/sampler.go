// Package sampler polls metric providers and publishes the readings as
// events. The Sampler is the owner of two events:
//
//	on_sample  emitted with the owner after every poll
//	on_stop    emitted without the owner once, when sampling stops
package sampler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/kazakovdmitriy/go-eventmanager/internal/events"
	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"go.uber.org/zap"
)

const (
	EventSample = "on_sample"
	EventStop   = "on_stop"
)

// ErrStopped is returned by SampleNow after Stop.
var ErrStopped = errors.New("sampler stopped")

// Provider reads one set of gauges.
type Provider interface {
	Name() string
	Collect(ctx context.Context) (model.Sample, error)
}

// Sampler is safe for concurrent use. Observer callbacks run while the
// sampler lock is held and must not call back into the Sampler.
type Sampler struct {
	name      string
	interval  time.Duration
	providers []Provider
	log       *zap.Logger
	now       func() time.Time

	mu        sync.Mutex
	pollCount int64
	onSample  *events.Event[*Sampler, model.SampleEvent]
	onStop    *events.Event[*Sampler, model.StopEvent]
	host      *events.Host
	stopped   bool

	done chan struct{}
	wg   sync.WaitGroup
}

func New(name string, interval time.Duration, providers []Provider, log *zap.Logger) (*Sampler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
	}

	s := &Sampler{
		name:      name,
		interval:  interval,
		providers: providers,
		log:       log,
		now:       time.Now,
		onSample:  events.NewEvent[*Sampler, model.SampleEvent](EventSample, events.WithLogger(log)),
		onStop:    events.NewEvent[*Sampler, model.StopEvent](EventStop, events.WithLogger(log)),
		host:      events.NewHost(name),
		done:      make(chan struct{}),
	}
	s.onSample.Bind(s)
	s.onStop.Bind(s)

	if err := s.host.Add(s.onSample); err != nil {
		return nil, err
	}
	if err := s.host.Add(s.onStop); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sampler) String() string {
	return s.name
}

// RegisterOnSample registers observer by method name, "on_sample" when
// methodName is empty.
func (s *Sampler) RegisterOnSample(observer any, methodName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onSample.RegisterMethod(observer, methodName)
}

func (s *Sampler) RegisterOnSampleFunc(observer any, fn func(*Sampler, model.SampleEvent) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onSample.Register(observer, fn)
}

func (s *Sampler) DeregisterOnSample(observer any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onSample.Deregister(observer)
}

// RegisterOnStop registers observer by method name, "on_stop" when
// methodName is empty. The method receives only the StopEvent.
func (s *Sampler) RegisterOnStop(observer any, methodName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onStop.RegisterMethod(observer, methodName)
}

func (s *Sampler) RegisterOnStopFunc(observer any, fn func(model.StopEvent) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onStop.RegisterNoOwner(observer, fn)
}

func (s *Sampler) DeregisterOnStop(observer any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onStop.Deregister(observer)
}

// Events lists the sampler events with their observer counts.
func (s *Sampler) Events() []events.EventInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host.Events()
}

// SampleNow polls all providers and emits on_sample. Provider failures are
// logged and skipped; an observer failure is returned. The returned event
// does not share its gauges with the emitted one.
func (s *Sampler) SampleNow(ctx context.Context) (model.SampleEvent, error) {
	gauges := s.collect(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return model.SampleEvent{}, fmt.Errorf("%s: %w", s.name, ErrStopped)
	}

	s.pollCount++
	event := model.NewSampleEvent(s.name, s.now(), s.pollCount, gauges)

	if err := s.onSample.Emit(event); err != nil {
		return event.Clone(), fmt.Errorf("failed to emit %s: %w", EventSample, err)
	}

	return event.Clone(), nil
}

func (s *Sampler) collect(ctx context.Context) model.Sample {
	gauges := make(model.Sample)
	for _, p := range s.providers {
		sample, err := p.Collect(ctx)
		if err != nil {
			s.log.Error("failed to collect metrics from provider",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}
		maps.Copy(gauges, sample)
	}
	return gauges
}

// Start polls on every interval until ctx is done or Stop is called.
func (s *Sampler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.log.Info("sampler started",
			zap.String("sampler", s.name),
			zap.Duration("interval", s.interval),
		)

		for {
			select {
			case <-ticker.C:
				if _, err := s.SampleNow(ctx); err != nil && !errors.Is(err, ErrStopped) {
					s.log.Error("sample failed", zap.Error(err))
				}
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}()
}

// Stop ends polling and emits on_stop once. Later calls do nothing.
func (s *Sampler) Stop(reason string) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	event := model.NewStopEvent(s.name, s.now(), s.pollCount, reason)
	if err := s.onStop.EmitNoOwner(event); err != nil {
		return fmt.Errorf("failed to emit %s: %w", EventStop, err)
	}

	s.log.Info("sampler stopped",
		zap.String("sampler", s.name),
		zap.Int64("poll_count", s.pollCount),
	)

	return nil
}
