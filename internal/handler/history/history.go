package history

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	maxLimit     = 1000
)

// History reads stored event records.
type History interface {
	Recent(ctx context.Context, event string, limit int) ([]model.EventRecord, error)
}

type HistoryHandler struct {
	history History
	log     *zap.Logger
}

func NewHistoryHandler(history History, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		log:     log,
	}
}

// GetRecent serves GET /events/{event}/recent?limit=N.
func (h *HistoryHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		http.Error(w, "storage is not configured", http.StatusServiceUnavailable)
		return
	}

	event := chi.URLParam(r, "event")
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxLimit {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.history.Recent(r.Context(), event, limit)
	if err != nil {
		h.log.Error("failed to read event history", zap.String("event", event), zap.Error(err))
		http.Error(w, "failed to read event history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []model.EventRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(records); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}
