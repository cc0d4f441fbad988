// Package sample serves the sampler over HTTP: an immediate poll and the
// list of events the sampler exposes.
package sample

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kazakovdmitriy/go-eventmanager/internal/events"
	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler"
	"go.uber.org/zap"
)

type Sampler interface {
	SampleNow(ctx context.Context) (model.SampleEvent, error)
	Events() []events.EventInfo
}

type SampleHandler struct {
	sampler Sampler
	log     *zap.Logger
}

func NewSampleHandler(s Sampler, log *zap.Logger) *SampleHandler {
	return &SampleHandler{
		sampler: s,
		log:     log,
	}
}

// PostSample polls now and responds with the emitted sample.
func (h *SampleHandler) PostSample(w http.ResponseWriter, r *http.Request) {
	event, err := h.sampler.SampleNow(r.Context())
	if err != nil {
		if errors.Is(err, sampler.ErrStopped) {
			http.Error(w, "sampler is stopped", http.StatusServiceUnavailable)
			return
		}
		h.log.Error("failed to sample", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, event, h.log)
}

// GetEvents lists the sampler events with their observer counts.
func (h *SampleHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.sampler.Events(), h.log)
}

func writeJSON(w http.ResponseWriter, v any, log *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}
