package observers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler"
	"github.com/kazakovdmitriy/go-eventmanager/pkg/objpool"
	"go.uber.org/zap"
)

// ErrClosed is returned by observers used after Close.
var ErrClosed = errors.New("observer closed")

var bufferPool = objpool.New(func() *bytes.Buffer { return new(bytes.Buffer) })

// FileObserver appends every event as a JSON line to a file.
type FileObserver struct {
	file     *os.File
	filePath string
	log      *zap.Logger
	mu       sync.Mutex
}

func NewFileObserver(filePath string, log *zap.Logger) (*FileObserver, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &FileObserver{
		file:     file,
		filePath: filePath,
		log:      log,
	}, nil
}

func (f *FileObserver) OnSample(owner fmt.Stringer, e model.SampleEvent) error {
	record, err := model.NewEventRecord(sampler.EventSample, owner.String(), e.Timestamp, e)
	if err != nil {
		return err
	}
	return f.write(record)
}

func (f *FileObserver) OnStop(e model.StopEvent) error {
	record, err := model.NewEventRecord(sampler.EventStop, e.Source, e.Timestamp, e)
	if err != nil {
		return err
	}
	return f.write(record)
}

func (f *FileObserver) write(record model.EventRecord) error {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(record); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return fmt.Errorf("%s: %w", f.filePath, ErrClosed)
	}

	if _, err := f.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to %s: %w", f.filePath, err)
	}

	f.log.Debug("event written", zap.String("event", record.Event), zap.String("path", f.filePath))
	return nil
}

// Close syncs and closes the file.
func (f *FileObserver) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	if err := f.file.Sync(); err != nil {
		f.log.Warn("sync failed on close", zap.Error(err))
	}

	if err := f.file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	f.file = nil
	f.log.Info("file observer closed", zap.String("path", f.filePath))
	return nil
}
