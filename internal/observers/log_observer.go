package observers

import (
	"fmt"

	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"go.uber.org/zap"
)

// LogObserver writes every sampler event to the log.
type LogObserver struct {
	logger *zap.Logger
}

func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{
		logger: logger,
	}
}

func (l *LogObserver) OnSample(owner fmt.Stringer, e model.SampleEvent) {
	l.logger.Info("sample emitted",
		zap.Stringer("owner", owner),
		zap.Int64("poll_count", e.PollCount),
		zap.Int("gauges", len(e.Gauges)),
	)
	l.logger.Debug("sample gauges", zap.Strings("names", e.Names()))
}

func (l *LogObserver) OnStop(e model.StopEvent) {
	l.logger.Info("sampler stopped",
		zap.String("source", e.Source),
		zap.String("reason", e.Reason),
		zap.Int64("poll_count", e.PollCount),
	)
}
