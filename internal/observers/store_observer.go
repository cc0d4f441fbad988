package observers

import (
	"context"
	"fmt"
	"time"

	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler"
)

// Store persists event records.
type Store interface {
	Save(ctx context.Context, record model.EventRecord) error
	Ping(ctx context.Context) error
}

// StoreObserver saves every event through a Store.
type StoreObserver struct {
	store   Store
	timeout time.Duration
}

func NewStoreObserver(store Store, timeout time.Duration) *StoreObserver {
	return &StoreObserver{
		store:   store,
		timeout: timeout,
	}
}

func (s *StoreObserver) OnSample(owner fmt.Stringer, e model.SampleEvent) error {
	record, err := model.NewEventRecord(sampler.EventSample, owner.String(), e.Timestamp, e)
	if err != nil {
		return err
	}
	return s.save(record)
}

func (s *StoreObserver) OnStop(e model.StopEvent) error {
	record, err := model.NewEventRecord(sampler.EventStop, e.Source, e.Timestamp, e)
	if err != nil {
		return err
	}
	return s.save(record)
}

func (s *StoreObserver) save(record model.EventRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.store.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to store %s: %w", record.Event, err)
	}
	return nil
}
