package ping

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type PingHandler struct {
	log     *zap.Logger
	checker HealthChecker
}

// NewPingHandler returns a handler reporting the health of checker. A nil
// checker means no storage is configured and every ping fails.
func NewPingHandler(log *zap.Logger, checker HealthChecker) *PingHandler {
	return &PingHandler{
		log:     log,
		checker: checker,
	}
}

func (h *PingHandler) GetPingDB(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		h.log.Warn("storage is not configured")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		h.log.Warn("failed to ping database", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
