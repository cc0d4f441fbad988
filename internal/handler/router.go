package handler

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kazakovdmitriy/go-eventmanager/internal/handler/history"
	"github.com/kazakovdmitriy/go-eventmanager/internal/handler/middlewares"
	"github.com/kazakovdmitriy/go-eventmanager/internal/handler/ping"
	"github.com/kazakovdmitriy/go-eventmanager/internal/handler/sample"
	"go.uber.org/zap"
)

// Deps are the services the router exposes. Health and History may be
// nil when no database is configured.
type Deps struct {
	Sampler   sample.Sampler
	Health    ping.HealthChecker
	History   history.History
	RateLimit int
}

func SetupHandler(
	deps Deps,
	activeRequests *sync.WaitGroup,
	shutdownChan <-chan struct{},
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	setupMiddlewares(r, activeRequests, shutdownChan, log)

	setupPingRoutes(r, ping.NewPingHandler(log, deps.Health))
	setupSampleRoutes(r, sample.NewSampleHandler(deps.Sampler, log), deps.RateLimit, log)
	setupHistoryRoutes(r, history.NewHistoryHandler(deps.History, log))

	return r
}

func setupMiddlewares(
	r chi.Router,
	activeRequests *sync.WaitGroup,
	shutdownChan <-chan struct{},
	log *zap.Logger,
) {
	r.Use(middleware.RequestID)
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.ResponseLogger(log))
	r.Use(middlewares.TrackActiveRequests(activeRequests, shutdownChan))
	r.Use(middleware.Compress(5, "application/json"))
}

func setupPingRoutes(r chi.Router, pingHandler *ping.PingHandler) {
	r.Get("/ping", pingHandler.GetPingDB)
}

func setupSampleRoutes(r chi.Router, sampleHandler *sample.SampleHandler, rateLimit int, log *zap.Logger) {
	r.Get("/events", sampleHandler.GetEvents)

	r.With(middlewares.RateLimiter(rateLimit, log)).Post("/sample", sampleHandler.PostSample)
}

func setupHistoryRoutes(r chi.Router, historyHandler *history.HistoryHandler) {
	r.Get("/events/{event}/recent", historyHandler.GetRecent)
}
