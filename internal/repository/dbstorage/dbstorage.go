// Package dbstorage stores emitted events in PostgreSQL.
package dbstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/kazakovdmitriy/go-eventmanager/internal/observers"
	"github.com/kazakovdmitriy/go-eventmanager/internal/retry"
	"go.uber.org/zap"
)

var _ observers.Store = (*EventStore)(nil)

// ErrNotConnected is returned when the store has no pool.
var ErrNotConnected = errors.New("database not connected")

const insertEvent = `
	INSERT INTO events (event, source, ts, payload)
	VALUES ($1, $2, $3, $4);
`

const selectRecent = `
	SELECT event, source, ts, payload
	FROM events
	WHERE event = $1
	ORDER BY ts DESC, id DESC
	LIMIT $2;
`

type EventStore struct {
	db    *pgxpool.Pool
	log   *zap.Logger
	retry retry.Config
}

// NewEventStore retries failed writes per rc; only transient connection
// errors are retried.
func NewEventStore(db *pgxpool.Pool, rc retry.Config, log *zap.Logger) *EventStore {
	rc.IsRetryableFn = isRetryable
	return &EventStore{
		db:    db,
		log:   log,
		retry: rc,
	}
}

func (s *EventStore) Save(ctx context.Context, record model.EventRecord) error {
	if s == nil || s.db == nil {
		return ErrNotConnected
	}

	err := retry.Do(ctx, s.retry, func(ctx context.Context) error {
		_, err := s.db.Exec(ctx, insertEvent, record.Event, record.Source, record.Time(), []byte(record.Payload))
		return err
	})
	if err != nil {
		s.log.Error("failed to save event",
			zap.String("event", record.Event),
			zap.String("source", record.Source),
			zap.Error(err),
		)
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Recent returns up to limit latest records of event, newest first.
func (s *EventStore) Recent(ctx context.Context, event string, limit int) ([]model.EventRecord, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConnected
	}

	rows, err := s.db.Query(ctx, selectRecent, event, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var records []model.EventRecord
	for rows.Next() {
		var (
			record  model.EventRecord
			ts      time.Time
			payload []byte
		)
		if err := rows.Scan(&record.Event, &record.Source, &ts, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		record.Ts = ts.UnixMilli()
		record.Payload = payload
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

func (s *EventStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrNotConnected
	}
	return s.db.Ping(ctx)
}

func (s *EventStore) Close() error {
	if s != nil && s.db != nil {
		s.db.Close()
	}
	return nil
}

// isRetryable reports whether err is a transient connection failure.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected
	}

	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
