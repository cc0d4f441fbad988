package observers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kazakovdmitriy/go-eventmanager/internal/compress"
	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/kazakovdmitriy/go-eventmanager/internal/retry"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler"
	"github.com/kazakovdmitriy/go-eventmanager/internal/signer"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

type WebhookConfig struct {
	URL         string
	Key         string
	Workers     int
	QueueSize   int
	MinGzipSize int
	Timeout     time.Duration
	Retry       retry.Config
}

// WebhookObserver posts events as JSON to a URL. Events are queued and
// sent by a worker pool so that emission never waits for the network;
// when the queue is full the event is dropped and counted.
type WebhookObserver struct {
	cfg    WebhookConfig
	signer signer.Signer
	client *http.Client
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
	tasks  chan model.EventRecord
	wg     sync.WaitGroup

	sent    uint64
	dropped uint64
	failed  uint64
}

func NewWebhookObserver(cfg WebhookConfig, log *zap.Logger) *WebhookObserver {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = cfg.Workers * 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	h := &WebhookObserver{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:   log,
		tasks: make(chan model.EventRecord, cfg.QueueSize),
	}
	if cfg.Key != "" {
		h.signer = signer.NewHMACSigner(cfg.Key)
	}

	for i := 0; i < cfg.Workers; i++ {
		h.wg.Add(1)
		go h.worker(i)
	}

	log.Info("webhook observer started",
		zap.String("url", cfg.URL),
		zap.Int("workers", cfg.Workers),
		zap.Int("queue_size", cfg.QueueSize),
	)

	return h
}

func (h *WebhookObserver) OnSample(owner fmt.Stringer, e model.SampleEvent) error {
	record, err := model.NewEventRecord(sampler.EventSample, owner.String(), e.Timestamp, e)
	if err != nil {
		return err
	}
	h.enqueue(record)
	return nil
}

func (h *WebhookObserver) OnStop(e model.StopEvent) error {
	record, err := model.NewEventRecord(sampler.EventStop, e.Source, e.Timestamp, e)
	if err != nil {
		return err
	}
	h.enqueue(record)
	return nil
}

// Stats returns the number of sent, dropped and failed events.
func (h *WebhookObserver) Stats() (sent, dropped, failed uint64) {
	return atomic.LoadUint64(&h.sent), atomic.LoadUint64(&h.dropped), atomic.LoadUint64(&h.failed)
}

func (h *WebhookObserver) enqueue(record model.EventRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		atomic.AddUint64(&h.dropped, 1)
		return
	}

	select {
	case h.tasks <- record:
	default:
		dropped := atomic.AddUint64(&h.dropped, 1)
		if dropped%100 == 1 {
			h.log.Warn("webhook queue is full, dropping event",
				zap.String("event", record.Event),
				zap.Int("queue_length", len(h.tasks)),
				zap.Uint64("dropped", dropped),
			)
		}
	}
}

func (h *WebhookObserver) worker(id int) {
	defer h.wg.Done()

	for record := range h.tasks {
		start := time.Now()
		err := h.send(context.Background(), record)
		if err != nil {
			atomic.AddUint64(&h.failed, 1)
			h.log.Error("failed to send event",
				zap.Int("worker_id", id),
				zap.String("event", record.Event),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			continue
		}
		atomic.AddUint64(&h.sent, 1)
	}
}

func (h *WebhookObserver) send(ctx context.Context, record model.EventRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling record failed: %w", err)
	}

	var signature string
	if h.signer != nil {
		signature = h.signer.Sign(data)
	}

	body := data
	gzipped := h.cfg.MinGzipSize > 0 && len(data) >= h.cfg.MinGzipSize
	if gzipped {
		buf := bufferPool.Get()
		defer bufferPool.Put(buf)
		if err := compress.Gzip(buf, data, gzip.BestSpeed); err != nil {
			return err
		}
		body = buf.Bytes()
	}

	return retry.Do(ctx, h.cfg.Retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.URL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if gzipped {
			req.Header.Set("Content-Encoding", compress.Encoding)
		}
		if signature != "" {
			req.Header.Set(signer.Header, signature)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			return retry.Retryable(fmt.Errorf("request failed: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("webhook responded %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
			if resp.StatusCode >= http.StatusInternalServerError {
				return retry.Retryable(err)
			}
			return err
		}

		return nil
	})
}

// Close stops accepting events and waits until queued events are sent.
func (h *WebhookObserver) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.tasks)
	h.mu.Unlock()

	h.wg.Wait()

	sent, dropped, failed := h.Stats()
	h.log.Info("webhook observer closed",
		zap.Uint64("sent", sent),
		zap.Uint64("dropped", dropped),
		zap.Uint64("failed", failed),
	)
	return nil
}
